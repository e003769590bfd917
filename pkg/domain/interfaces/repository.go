package interfaces

import "context"

// Repository is the data-access collaborator for every buyer view
type Repository interface {
	Framework() FrameworkRepository
	Brief() BriefRepository
	BriefResponse() BriefResponseRepository
	DirectAwardProject() DirectAwardProjectRepository

	Close() error
}

// Pinger is implemented by backends that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}
