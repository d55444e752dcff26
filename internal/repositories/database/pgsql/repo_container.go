package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	employeeRepo := newPgxEmployeeRepository(dbPool)
	leaveRepo := newPgxLeaveRepository(dbPool, employeeRepo)

	return portsrepo.RepositoryProvider{
		EmployeeRepo: employeeRepo,
		LeaveRepo:    leaveRepo,
	}
}
