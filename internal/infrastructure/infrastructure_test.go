package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/spiral/internal/config"
	"github.com/JaimeStill/spiral/internal/infrastructure"
	"github.com/JaimeStill/spiral/pkg/auth"
	"github.com/JaimeStill/spiral/pkg/database"
	"github.com/JaimeStill/spiral/pkg/storage"
)

func validConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "spiral",
			User:            "spiral",
			Password:        "spiral",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Provider:      storage.ProviderMemory,
			ContainerName: "transcripts",
		},
		Auth: auth.Config{
			DevHeader:        auth.DefaultDevHeader,
			DiscoveryTimeout: "1s",
		},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Database == nil || infra.Database.Connection() == nil {
		t.Error("Database is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.Auth == nil {
		t.Error("Auth is nil")
	}
	if infra.Metrics == nil || infra.Metrics.Registry() == nil {
		t.Error("Metrics is nil")
	}

	infra.Database.Connection().Close()
}

func TestReadyTracksStartup(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer infra.Database.Connection().Close()

	if infra.Ready() {
		t.Error("ready before startup completed")
	}

	infra.Lifecycle.WaitForStartup()

	if !infra.Ready() {
		t.Error("not ready after startup with auth disabled")
	}
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Provider = storage.ProviderAzure
	cfg.Storage.ConnectionString = "not-a-connection-string"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for invalid storage connection string")
	}
}
