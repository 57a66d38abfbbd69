package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: "L-2", Title: "BMW M4, Competition", Type: "car", Make: "BMW", Model: "M4", Year: 2022, Price: 67500,
			Mileage: 15200, Status: domain.ListingActive, SellerName: "James Carter", VIN: "WBS1", Location: "Manchester, UK", Views: 1267},
		{ID: "L-1", Title: "Ducati Panigale", Type: "motorbike", Make: "Ducati", Model: "V4 S", Year: 2023, Price: 28500,
			Mileage: 2100, Status: domain.ListingPending, SellerName: "Moto Elite", VIN: "ZDM1", Location: "Bristol, UK", Views: 9},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, XLSX, f)

	f, err = ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)

	assert.Equal(t, "listings-export.xlsx", Filename("listings", XLSX))
}

func TestWriteCSVKeepsOrderAndMappedColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, "Listings", ListingColumns, sampleListings()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "Type", "Make", "Model", "Year", "Price", "Mileage", "Status", "Seller", "VIN", "Location", "Views"}, rows[0])
	assert.Equal(t, "L-2", rows[1][0])
	assert.Equal(t, "BMW M4, Competition", rows[1][1])
	assert.Equal(t, "67500", rows[1][6])
	assert.Equal(t, "Manchester, UK", rows[1][11])
	assert.Equal(t, "L-1", rows[2][0])
	assert.Equal(t, "pending", rows[2][8])
}

func TestWriteCSVUserJoinedIsDate(t *testing.T) {
	users := []models.User{{ID: "U-1", Name: "Alex", Email: "a@b.c", Role: "admin", Status: domain.UserActive, CreatedAt: "2024-01-10T09:00:00Z", Listings: 3}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, "Users", UserColumns, users))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"U-1", "Alex", "a@b.c", "admin", "active", "2024-01-10", "3"}, rows[1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, "Listings", ListingColumns, sampleListings()))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Listings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "L-2", rows[1][0])
	assert.Equal(t, "67500", rows[1][6])
	assert.Equal(t, "Ducati", rows[2][3])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, PDF, "Listings export", ListingColumns, sampleListings()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteEmptySetStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, "", ListingColumns, []models.Listing{}))
	assert.Equal(t, "ID,Title,Type,Make,Model,Year,Price,Mileage,Status,Seller,VIN,Location,Views\n", buf.String())
}

func TestWriteRejectsNoColumns(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, CSV, "", nil, sampleListings()))
	assert.Error(t, Write(&buf, Format("docx"), "", ListingColumns, sampleListings()))
}

func TestDisplayFormatsMoneyOnly(t *testing.T) {
	l := sampleListings()[0]
	assert.Equal(t, "£67,500", ListingColumns[6].Display(l))
	assert.Equal(t, "2022", ListingColumns[5].Display(l))
	assert.Equal(t, "67500", ListingColumns[6].Text(l))
}
