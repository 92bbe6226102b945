package sqlite

import (
	"github.com/cooooin/harmony/internal/db"
	repo "github.com/cooooin/harmony/internal/repository"
)

type Repositories struct {
	Persons      repo.Persons
	Objects      repo.Objects
	Trades       repo.Trades
	Transactions repo.Transactions
	AuditEvents  repo.AuditEvents
}

func NewRepositories(pool *db.Pool, retry db.RetryPolicy) Repositories {
	s := &store{pool: pool, retry: retry}
	return Repositories{
		Persons:      &personsRepo{s},
		Objects:      &objectsRepo{s},
		Trades:       &tradesRepo{s},
		Transactions: &transactionsRepo{s},
		AuditEvents:  &auditEventsRepo{s},
	}
}
