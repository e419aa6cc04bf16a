//go:build integration

// Package helpers provides the shared Fuseki container and per-test context
// for the integration suite.
package helpers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const fusekiImage = "secoresearch/fuseki:5.1.0"

// FusekiContainer wraps a disposable Apache Jena Fuseki instance. The whole
// suite shares one container; isolation comes from per-test named graphs.
type FusekiContainer struct {
	container testcontainers.Container
	baseURL   string
}

// StartFuseki launches Fuseki with SPARQL Update enabled so fixtures can be
// loaded over the wire.
func StartFuseki(ctx context.Context) (*FusekiContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        fusekiImage,
		ExposedPorts: []string{"3030/tcp"},
		Env: map[string]string{
			"ENABLE_UPDATE": "true",
		},
		WaitingFor: wait.ForHTTP("/$/ping").
			WithPort("3030/tcp").
			WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("starting fuseki: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving fuseki host: %w", err)
	}
	port, err := container.MappedPort(ctx, "3030")
	if err != nil {
		return nil, fmt.Errorf("resolving fuseki port: %w", err)
	}

	return &FusekiContainer{
		container: container,
		baseURL:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}

// QueryEndpoint returns the SPARQL query URL of the default dataset.
func (f *FusekiContainer) QueryEndpoint() string {
	return f.baseURL + "/ds/sparql"
}

// UpdateEndpoint returns the SPARQL Update URL of the default dataset.
func (f *FusekiContainer) UpdateEndpoint() string {
	return f.baseURL + "/ds/update"
}

// Update executes one SPARQL Update request, used to load and tear down
// fixture data.
func (f *FusekiContainer) Update(ctx context.Context, update string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.UpdateEndpoint(), strings.NewReader(update))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/sparql-update")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("update failed with HTTP %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Terminate stops and removes the container.
func (f *FusekiContainer) Terminate(ctx context.Context) error {
	return f.container.Terminate(ctx)
}
