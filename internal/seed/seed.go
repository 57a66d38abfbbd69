// Package seed loads the marketplace fixture data embedded in the binary.
package seed

import (
	"embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"blackpiston/internal/domain/models"
)

//go:embed data/*.yaml
var files embed.FS

// Dashboard holds the figures that are not derived from live records.
type Dashboard struct {
	Revenue30d  int64                 `yaml:"revenue30d"`
	NewUsers    int                   `yaml:"newUsers"`
	OpenTickets int                   `yaml:"openTickets"`
	Revenue     []models.RevenuePoint `yaml:"revenue"`
	TopModels   []models.ModelCount   `yaml:"topModels"`
}

// Data is the full fixture set.
type Data struct {
	Vehicles     []models.Vehicle
	Listings     []models.Listing
	Users        []models.User
	Sellers      []models.Seller
	Transactions []models.Transaction
	AuditLogs    []models.AuditEntry
	Dashboard    Dashboard
}

// Load decodes every embedded fixture file.
func Load() (Data, error) {
	var d Data
	targets := []struct {
		name string
		dst  any
	}{
		{"vehicles.yaml", &d.Vehicles},
		{"listings.yaml", &d.Listings},
		{"users.yaml", &d.Users},
		{"sellers.yaml", &d.Sellers},
		{"transactions.yaml", &d.Transactions},
		{"audit_logs.yaml", &d.AuditLogs},
		{"dashboard.yaml", &d.Dashboard},
	}
	for _, t := range targets {
		if err := decode(t.name, t.dst); err != nil {
			return Data{}, err
		}
	}
	return d, nil
}

// MustLoad panics on malformed fixtures; they are compiled in.
func MustLoad() Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func decode(name string, dst any) error {
	raw, err := files.ReadFile("data/" + name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	err = yaml.Unmarshal(raw, dst)
	return errors.Wrapf(err, "failed to unmarshal %s", name)
}
