package memory

import (
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
)

// Memory is a process-local repository for development and tests
type Memory struct {
	framework *frameworkRepository
	brief     *briefRepository
	response  *briefResponseRepository
	project   *projectRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		framework: newFrameworkRepository(),
		brief:     newBriefRepository(),
		response:  newBriefResponseRepository(),
		project:   newProjectRepository(),
	}
}

func (m *Memory) Framework() interfaces.FrameworkRepository {
	return m.framework
}

func (m *Memory) Brief() interfaces.BriefRepository {
	return m.brief
}

func (m *Memory) BriefResponse() interfaces.BriefResponseRepository {
	return m.response
}

func (m *Memory) DirectAwardProject() interfaces.DirectAwardProjectRepository {
	return m.project
}

func (m *Memory) Close() error {
	return nil
}
