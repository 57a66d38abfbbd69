// Package app wires configuration, stores and services into a runnable API.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/blob"
	"blackpiston/internal/config"
	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	api "blackpiston/internal/http"
	"blackpiston/internal/http/handlers"
	"blackpiston/internal/metrics"
	"blackpiston/internal/repositories"
	"blackpiston/internal/seed"
	"blackpiston/internal/services"
	"blackpiston/internal/utils"
)

const (
	bucketListings = "listings"
	bucketUsers    = "users"
	bucketAudit    = "audit_logs"
)

type App struct {
	Env     config.Env
	Data    seed.Data
	API     *handlers.API
	Metrics *metrics.Recorder

	Listings repositories.Store[models.Listing]
	Users    repositories.Store[models.User]
	Audit    *repositories.AuditLog

	DB *sql.DB
}

// New seeds the stores and, for a persistent driver, restores the last
// snapshot from the database before building the services.
func New(ctx context.Context, env config.Env) (*App, error) {
	data, err := seed.Load()
	if err != nil {
		return nil, err
	}
	rec := metrics.New()

	listingMem, err := repositories.NewMemoryStore("listing", data.Listings)
	if err != nil {
		return nil, fmt.Errorf("seed listings: %w", err)
	}
	listingMem.WithID = func(l models.Listing, id string) models.Listing {
		l.ID = "L-" + strings.ToUpper(id[:8])
		return l
	}
	userMem, err := repositories.NewMemoryStore("user", data.Users)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	audit := repositories.NewAuditLog(data.AuditLogs)

	a := &App{Env: env, Data: data, Metrics: rec, Listings: listingMem, Users: userMem, Audit: audit}

	if env.Persistent() {
		if err := a.attachSnapshots(ctx, listingMem, userMem); err != nil {
			return nil, err
		}
	}

	sink, err := exportSink(ctx, env)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.API, err = a.buildAPI(data, sink)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) attachSnapshots(ctx context.Context, listings *repositories.MemoryStore[models.Listing], users *repositories.MemoryStore[models.User]) error {
	db, err := config.OpenDB(a.Env.StoreDriver, a.Env.StoreDSN)
	if err != nil {
		return err
	}
	a.DB = db
	snap := repositories.NewSQLSnapshot(db, a.Env.StoreDriver)
	if err := snap.EnsureSchema(ctx); err != nil {
		a.Close()
		return err
	}

	if _, err := repositories.Restore[models.Listing](ctx, snap, bucketListings, listings); err != nil {
		a.Close()
		return err
	}
	if _, err := repositories.Restore[models.User](ctx, snap, bucketUsers, users); err != nil {
		a.Close()
		return err
	}
	var entries []models.AuditEntry
	ok, err := snap.Load(ctx, bucketAudit, &entries)
	if err != nil {
		a.Close()
		return err
	}
	if ok {
		a.Audit.Import(entries)
	}

	pl := repositories.NewPersisted[models.Listing](listings, snap, bucketListings)
	pl.Metrics = a.Metrics
	pu := repositories.NewPersisted[models.User](users, snap, bucketUsers)
	pu.Metrics = a.Metrics
	a.Listings, a.Users = pl, pu

	a.Audit.OnAppend = func(entries []models.AuditEntry) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := snap.Save(ctx, bucketAudit, entries); err != nil {
			a.Metrics.PersistFailed()
			utils.LogEvent("", "store", "persist", "bucket="+bucketAudit+" err="+err.Error())
		}
	}
	utils.LogEvent("", "store", "attach", "driver="+a.Env.StoreDriver)
	return nil
}

func exportSink(ctx context.Context, env config.Env) (blob.Sink, error) {
	if env.ExportS3Bucket == "" {
		return nil, nil
	}
	return blob.NewS3(ctx, blob.S3Config{
		Bucket:    env.ExportS3Bucket,
		Region:    env.ExportS3Region,
		Endpoint:  env.ExportS3Endpoint,
		PathStyle: env.ExportS3PathStyle,
	})
}

func (a *App) buildAPI(data seed.Data, sink blob.Sink) (*handlers.API, error) {
	vehicles, err := repositories.NewCollection("vehicle", data.Vehicles)
	if err != nil {
		return nil, err
	}
	sellers, err := repositories.NewCollection("seller", data.Sellers)
	if err != nil {
		return nil, err
	}
	txs, err := repositories.NewCollection("transaction", data.Transactions)
	if err != nil {
		return nil, err
	}

	users := services.UserService{Users: a.Users, Audit: a.Audit}
	auth, err := services.NewAuthService(a.Env.JWTSecret, a.Env.AdminEmail, a.Env.AdminPassword, a.Env.AdminPasswordHash, a.Env.TwoFactorCode)
	if err != nil {
		return nil, err
	}
	auth.Profile = users.FindByEmail

	return &handlers.API{
		Listings: services.ListingService{Listings: a.Listings, Audit: a.Audit},
		Users:    users,
		ListingBulk: services.BulkService[models.Listing]{
			Resource: "listing",
			Store:    a.Listings,
			Actions:  domain.ListingTransitions,
			Label:    func(l models.Listing) string { return l.Title },
			Audit:    a.Audit,
			Metrics:  a.Metrics,
		},
		UserBulk: services.BulkService[models.User]{
			Resource: "user",
			Store:    a.Users,
			Actions:  domain.UserTransitions,
			Label:    func(u models.User) string { return u.Name },
			Audit:    a.Audit,
			Metrics:  a.Metrics,
		},
		Dashboard:   services.DashboardService{Listings: a.Listings, Baseline: data.Dashboard},
		Catalogue:   services.CatalogueService{Vehicles: vehicles},
		Ledger:      services.LedgerService{Sellers: sellers, Transactions: txs},
		Audit:       services.AuditService{Log: a.Audit},
		Auth:        auth,
		Export:      services.ExportService{Sink: sink, Metrics: a.Metrics},
		PageSize:    a.Env.PageSize,
		DB:          a.DB,
		StoreDriver: a.Env.StoreDriver,
	}, nil
}

// Router builds the gin engine for the API.
func (a *App) Router() *gin.Engine {
	return api.NewRouter(a.Env, a.API, a.Metrics)
}

// Close releases the snapshot database, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	err := a.DB.Close()
	a.DB = nil
	return err
}
