package backend

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/config"
)

func TestCreateMemoryStore(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateStore(context.Background(), Config{Type: MemoryStore})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}
	if result.Store == nil {
		t.Error("CreateStore() returned nil store")
	}
	if result.Cleanup != nil {
		t.Error("memory backend should not need cleanup")
	}
}

func TestCreateSQLiteStore(t *testing.T) {
	factory := NewFactory(nil)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	result, err := factory.CreateStore(context.Background(), Config{
		Type:         SQLiteStore,
		SQLiteDBPath: dbPath,
	})
	if err != nil {
		t.Fatalf("CreateStore() error = %v", err)
	}
	if result.Store == nil {
		t.Error("CreateStore() returned nil store")
	}
	if result.Cleanup == nil {
		t.Fatal("sqlite backend should provide cleanup")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}

func TestCreateStoreInvalidType(t *testing.T) {
	factory := NewFactory(nil)

	_, err := factory.CreateStore(context.Background(), Config{Type: "postgres"})
	if err == nil {
		t.Error("CreateStore() expected error for invalid backend type")
	}
}

func TestFromAppConfig(t *testing.T) {
	tests := []struct {
		name      string
		appConfig *config.Config
		wantType  Type
		wantErr   bool
	}{
		{
			name:      "sqlite backend",
			appConfig: &config.Config{DataBackend: "sqlite", SQLiteDBPath: "./data/test.db"},
			wantType:  SQLiteStore,
		},
		{
			name:      "memory backend",
			appConfig: &config.Config{DataBackend: "memory"},
			wantType:  MemoryStore,
		},
		{
			name:      "invalid backend",
			appConfig: &config.Config{DataBackend: "cassandra"},
			wantErr:   true,
		},
		{
			name:    "nil config",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromAppConfig(tt.appConfig)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Type != tt.wantType {
				t.Errorf("FromAppConfig() Type = %v, want %v", cfg.Type, tt.wantType)
			}
			if cfg.SQLiteDBPath != tt.appConfig.SQLiteDBPath {
				t.Errorf("FromAppConfig() SQLiteDBPath = %v, want %v", cfg.SQLiteDBPath, tt.appConfig.SQLiteDBPath)
			}
		})
	}
}

func TestTypeIsValid(t *testing.T) {
	if !SQLiteStore.IsValid() || !MemoryStore.IsValid() {
		t.Error("built-in backend types should be valid")
	}
	if Type("redis").IsValid() {
		t.Error("unknown backend type should be invalid")
	}
}
