package services

import (
	portsrepo "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/repositories"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.Leave = NewLeaveService(repos.LeaveRepo)

	return container
}
