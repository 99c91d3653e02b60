// Package seed loads the initial admin account and the sample catalogue.
// It runs on demand from the migrate command, never on API boot.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/homestay/homestay/internal/house"
	"github.com/homestay/homestay/internal/importer/housecsv"
)

//go:embed houses.csv
var sampleHouses []byte

type Admins interface {
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}

type Houses interface {
	Counts(ctx context.Context) (total, vacant int, err error)
	BulkCreate(ctx context.Context, rows []house.BulkRow) (*house.BulkResult, error)
}

type Options struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	// AssetBaseURL prefixes the relative image paths of the sample houses.
	AssetBaseURL string
}

type Result struct {
	AdminCreated  bool
	HousesCreated int
}

var ErrNoAdminPassword = errors.New("admin password is not set")

type Seeder struct {
	admins Admins
	houses Houses
	opts   Options
}

func New(admins Admins, houses Houses, opts Options) *Seeder {
	return &Seeder{admins: admins, houses: houses, opts: opts}
}

// Run is idempotent: the admin is created only when missing and sample
// houses only into an empty catalogue.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	if s.opts.AdminPassword == "" {
		return nil, ErrNoAdminPassword
	}

	res := &Result{}

	created, err := s.admins.EnsureAdmin(ctx, s.opts.AdminUsername, s.opts.AdminEmail, s.opts.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seeding admin: %w", err)
	}

	res.AdminCreated = created

	if created {
		slog.Info("seeded admin user", "username", s.opts.AdminUsername)
	} else {
		slog.Info("admin user already exists", "username", s.opts.AdminUsername)
	}

	total, _, err := s.houses.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting houses: %w", err)
	}

	if total > 0 {
		slog.Info("houses already present, skipping sample catalogue", "count", total)
		return res, nil
	}

	rows, err := housecsv.NewParser().Parse(bytes.NewReader(sampleHouses))
	if err != nil {
		return nil, fmt.Errorf("parsing sample houses: %w", err)
	}

	for i := range rows {
		in := &rows[i].Input
		in.Image = s.assetURL(in.Image)
		in.ImageLg = s.assetURL(in.ImageLg)
		in.Agent.Image = s.assetURL(in.Agent.Image)
	}

	bulk, err := s.houses.BulkCreate(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("seeding houses: %w", err)
	}

	res.HousesCreated = len(bulk.Created)
	slog.Info("seeded sample houses", "count", res.HousesCreated)

	return res, nil
}

func (s *Seeder) assetURL(path string) string {
	if s.opts.AssetBaseURL == "" || path == "" || !strings.HasPrefix(path, "/") {
		return path
	}

	return strings.TrimRight(s.opts.AssetBaseURL, "/") + path
}
