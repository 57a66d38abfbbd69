package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"blackpiston/internal/app"
	"blackpiston/internal/blob"
	"blackpiston/internal/export"
	"blackpiston/internal/services"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

var exportCmd = &cobra.Command{
	Use:   "export <listings|users>",
	Short: "Export a filtered table to CSV, XLSX or PDF",
	Long: `Export renders the current store contents, filtered and sorted the
same way the admin API does, and writes the file to --out-dir or, with
--s3, to the configured export bucket.

Example:
  blackpiston export listings --format csv --status pending
  blackpiston export users --format xlsx --role dealer --s3`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"listings", "users"},
	RunE:      runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("format", "xlsx", "csv, xlsx or pdf")
	f.String("status", "", "status filter")
	f.String("type", "", "listing type filter")
	f.String("role", "", "user role filter")
	f.String("search", "", "free-text search")
	f.String("sort", "", "sort field")
	f.String("dir", "asc", "sort direction")
	f.String("out-dir", ".", "directory to write the file to")
	f.Bool("s3", false, "upload to EXPORT_S3_BUCKET instead of writing locally")
	f.String("store", "", "store driver to read from (config default when empty)")
	f.String("dsn", "", "store DSN")
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd, map[string]string{"STORE_DRIVER": "store", "STORE_DSN": "dsn"})
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	format, err := export.ParseFormat(str("format"))
	if err != nil {
		return err
	}
	sort := table.By(str("sort"), table.ParseDirection(str("dir")))

	ctx := cmd.Context()
	a, err := app.New(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	exp := a.API.Export
	exp.RequestID = "cli"
	var file services.ExportFile
	switch args[0] {
	case "listings":
		rows := a.API.Listings.Matching(services.ListingFilter{
			Status: utils.FilterValue(str("status")),
			Type:   utils.FilterValue(str("type")),
			Search: str("search"),
		}, sort)
		file, err = services.Render(exp, "listings", "Listings", format, export.ListingColumns, rows)
	case "users":
		rows := a.API.Users.Matching(services.UserFilter{
			Status: utils.FilterValue(str("status")),
			Role:   utils.FilterValue(str("role")),
			Search: str("search"),
		}, sort)
		file, err = services.Render(exp, "users", "Users", format, export.UserColumns, rows)
	default:
		return fmt.Errorf("unknown export %q (valid: listings, users)", args[0])
	}
	if err != nil {
		return err
	}

	toS3, _ := flags.GetBool("s3")
	if toS3 {
		if exp.Sink == nil {
			return fmt.Errorf("--s3 needs EXPORT_S3_BUCKET")
		}
		file, err = exp.Store(ctx, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", file.Rows, file.Location)
		return nil
	}

	dir, err := filepath.Abs(str("out-dir"))
	if err != nil {
		return err
	}
	local, err := blob.NewFS(dir)
	if err != nil {
		return err
	}
	exp.Sink = local
	file, err = exp.Store(ctx, file)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", file.Rows, file.Location)
	return nil
}
