package tests

import (
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// LocalTestFixture brings up the docker-compose infrastructure the
// integration tests run against (currently just postgres).
type LocalTestFixture struct {
	dockerComposePath string
	compose           testcontainers.DockerCompose
}

func NewLocalTestFixture(dockerComposePath string, exposedServices map[string]nat.Port) (LocalTestFixture, error) {
	compose := testcontainers.NewLocalDockerCompose(
		[]string{dockerComposePath},
		uuid.NewString(),
	)

	composeWithCommand := compose.WithCommand([]string{"up", "-d"})
	for serviceName, port := range exposedServices {
		composeWithCommand = composeWithCommand.WithExposedService(
			serviceName,
			port.Int(),
			wait.ForListeningPort(port),
		)
	}

	return LocalTestFixture{
		dockerComposePath: dockerComposePath,
		compose:           composeWithCommand,
	}, nil
}

func (f *LocalTestFixture) Start() error {
	execErr := f.compose.Invoke()
	return execErr.Error
}

func (f *LocalTestFixture) Stop() error {
	execErr := f.compose.Down()
	return execErr.Error
}
