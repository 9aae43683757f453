package util

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-connections/nat"
	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
`

// Influx describes a running InfluxDB 2 instance initialised with one org,
// bucket and admin token.
type Influx struct {
	URL    string
	Org    string
	Bucket string
	Token  string
}

// start runs req and returns the container with the host address of port.
func start(ctx context.Context, req tc.ContainerRequest, port string) (tc.Container, string, error) {
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return nil, "", fmt.Errorf("start %s: %w", req.Image, err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		_ = cont.Terminate(context.Background())
		return nil, "", err
	}
	mapped, err := cont.MappedPort(ctx, nat.Port(port))
	if err != nil {
		_ = cont.Terminate(context.Background())
		return nil, "", err
	}
	return cont, fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}

// StartMosquitto launches an anonymous Mosquitto broker and returns its
// tcp:// URL and a cleanup function. It returns once a client can connect.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{{
			Reader:            strings.NewReader(mosquittoConf),
			ContainerFilePath: "/mosquitto/config/mosquitto.conf",
			FileMode:          0o644,
		}},
	}
	cont, addr, err := start(ctx, req, "1883")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = cont.Terminate(context.Background()) }
	broker := "tcp://" + addr

	readyCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("ridership-readiness")
	err = poll(readyCtx, func() bool {
		cli := paho.NewClient(opts)
		tok := cli.Connect()
		if !tok.WaitTimeout(time.Second) || tok.Error() != nil {
			return false
		}
		cli.Disconnect(100)
		return true
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("mosquitto not ready: %w", err)
	}
	return broker, cleanup, nil
}

// StartInfluxDB launches InfluxDB 2.7 in setup mode and returns its
// connection details and a cleanup function.
func StartInfluxDB(ctx context.Context) (Influx, func(), error) {
	db := Influx{Org: "ridership", Bucket: "runs", Token: "ridership-test-token"}
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "ridership",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "ridership-password",
			"DOCKER_INFLUXDB_INIT_ORG":         db.Org,
			"DOCKER_INFLUXDB_INIT_BUCKET":      db.Bucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": db.Token,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, addr, err := start(ctx, req, "8086")
	if err != nil {
		return Influx{}, nil, err
	}
	db.URL = "http://" + addr
	return db, func() { _ = cont.Terminate(context.Background()) }, nil
}
