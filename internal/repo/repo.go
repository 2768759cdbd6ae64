package repo

import (
	"github.com/campuspoints/campuspoints/internal/pg"
	eventrepo "github.com/campuspoints/campuspoints/internal/repo/event-repo"
	promorepo "github.com/campuspoints/campuspoints/internal/repo/promotion-repo"
	trxrepo "github.com/campuspoints/campuspoints/internal/repo/transaction-repo"
	userrepo "github.com/campuspoints/campuspoints/internal/repo/user-repo"
)

// Repositories exposes the concrete repos; each service narrows them down to
// the interface it declares.
type Repositories struct {
	UserRepo      *userrepo.Repository
	TrxRepo       *trxrepo.Repository
	PromotionRepo *promorepo.Repository
	EventRepo     *eventrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:      userrepo.New(conn),
		TrxRepo:       trxrepo.New(conn),
		PromotionRepo: promorepo.New(conn),
		EventRepo:     eventrepo.New(conn),
	}
}
