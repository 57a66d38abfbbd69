package models

// VehicleSpecs are the headline technical figures shown on the detail page.
type VehicleSpecs struct {
	Engine       string `json:"engine" yaml:"engine"`
	Horsepower   int    `json:"horsepower" yaml:"horsepower"`
	TopSpeed     string `json:"topSpeed" yaml:"topSpeed"`
	Acceleration string `json:"acceleration" yaml:"acceleration"`
	Drivetrain   string `json:"drivetrain" yaml:"drivetrain"`
	Seats        int    `json:"seats" yaml:"seats"`
}

// VehicleSeller is the seller card embedded in a public vehicle.
type VehicleSeller struct {
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type" yaml:"type"` // dealer / private
	Rating      float64 `json:"rating" yaml:"rating"`
	ReviewCount int     `json:"reviewCount" yaml:"reviewCount"`
	Verified    bool    `json:"verified" yaml:"verified"`
	MemberSince string  `json:"memberSince" yaml:"memberSince"`
	Phone       string  `json:"phone" yaml:"phone"`
}

// Vehicle is a public catalogue entry.
type Vehicle struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Make         string        `json:"make" yaml:"make"`
	Model        string        `json:"model" yaml:"model"`
	Year         int           `json:"year" yaml:"year"`
	Price        int64         `json:"price" yaml:"price"`
	Mileage      int           `json:"mileage" yaml:"mileage"`
	Fuel         string        `json:"fuel" yaml:"fuel"`
	Transmission string        `json:"transmission" yaml:"transmission"`
	Color        string        `json:"color" yaml:"color"`
	Location     string        `json:"location" yaml:"location"`
	Images       []string      `json:"images" yaml:"images"`
	Description  string        `json:"description" yaml:"description"`
	Specs        VehicleSpecs  `json:"specs" yaml:"specs"`
	Seller       VehicleSeller `json:"seller" yaml:"seller"`
	Features     []string      `json:"features" yaml:"features"`
	Type         string        `json:"type" yaml:"type"` // car / motorbike
	Featured     bool          `json:"featured" yaml:"featured"`
	CreatedAt    string        `json:"createdAt" yaml:"createdAt"`
}

func (v Vehicle) RecordID() string { return v.ID }

func (v Vehicle) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return v.ID, true
	case "title":
		return v.Title, true
	case "make":
		return v.Make, true
	case "model":
		return v.Model, true
	case "year":
		return v.Year, true
	case "price":
		return v.Price, true
	case "mileage":
		return v.Mileage, true
	case "fuel":
		return v.Fuel, true
	case "transmission":
		return v.Transmission, true
	case "color":
		return v.Color, true
	case "location":
		return v.Location, true
	case "description":
		return v.Description, true
	case "features":
		return v.Features, true
	case "type":
		return v.Type, true
	case "featured":
		return v.Featured, true
	case "createdAt":
		return v.CreatedAt, true
	case "seller.name":
		return v.Seller.Name, true
	case "seller.type":
		return v.Seller.Type, true
	case "specs.horsepower":
		return v.Specs.Horsepower, true
	}
	return nil, false
}
