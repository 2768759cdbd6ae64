package clearance

// Role is the closed set of clearance levels, ordered
// regular < cashier < manager < superuser.
type Role string

const (
	Regular   Role = "regular"
	Cashier   Role = "cashier"
	Manager   Role = "manager"
	Superuser Role = "superuser"
)

var ranks = map[Role]int{
	Regular:   0,
	Cashier:   1,
	Manager:   2,
	Superuser: 3,
}

func Valid(r Role) bool {
	_, ok := ranks[r]
	return ok
}

// AtLeast reports whether r has clearance equal to or above min.
// Unknown roles never pass.
func AtLeast(r, min Role) bool {
	rank, ok := ranks[r]
	minRank, minOk := ranks[min]
	return ok && minOk && rank >= minRank
}

func OneOf(r Role, allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
