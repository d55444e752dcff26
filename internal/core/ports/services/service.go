package services

// ServiceContainer bundles the service facades handed to the handlers at
// wiring time.
type ServiceContainer struct {
	Employee EmployeeSvcFacade
	Leave    LeaveSvcFacade
}
