package domain

type Category string

const (
	CategoryShoes    Category = "Shoes"
	CategoryBags     Category = "Bags"
	CategoryPerfumes Category = "Perfumes"
	CategoryBelts    Category = "Belts"
	CategoryClothes  Category = "Clothes"
	CategorySnacks   Category = "Snacks"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryShoes,
	CategoryBags,
	CategoryPerfumes,
	CategoryBelts,
	CategoryClothes,
	CategorySnacks,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

const (
	GenderMen    = "Men"
	GenderWomen  = "Women"
	GenderUnisex = "Unisex"

	ConditionNew         = "New"
	ConditionUsed        = "Used"
	ConditionRefurbished = "Refurbished"

	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
	StatusPreOrder   = "Pre-order"
)

type FieldKind string

const (
	KindString  FieldKind = "string"
	KindNumber  FieldKind = "number"
	KindArray   FieldKind = "array"
	KindBoolean FieldKind = "boolean"
)

// FieldDescriptor is one category-specific extra field.
type FieldDescriptor struct {
	Label string    `json:"label"`
	Kind  FieldKind `json:"kind"`
}

// Product is the fixed-shape product record. Optional numbers and the
// release date are pointers so that "absent" is distinct from zero.
type Product struct {
	ID              string      `json:"id,omitempty"`
	OwnerID         string      `json:"ownerId,omitempty"`
	Name            string      `json:"name" validate:"required"`
	Brand           string      `json:"brand" validate:"required"`
	Description     string      `json:"description"`
	GenderCategory  string      `json:"genderCategory" validate:"required,oneof=Men Women Unisex"`
	Category        Category    `json:"category" validate:"required,category"`
	Condition       string      `json:"condition" validate:"required,oneof=New Used Refurbished"`
	InventoryStatus string      `json:"inventoryStatus" validate:"required,oneof='In Stock' 'Out of Stock' 'Pre-order'"`
	Price           *float64    `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice   *float64    `json:"originalPrice" validate:"required,gte=0"`
	SellingPrice    *float64    `json:"sellingPrice" validate:"required,gte=0"`
	CountInStock    *int        `json:"countInStock" validate:"omitempty,gte=0"`
	Sizes           []string    `json:"sizes"`
	Colors          []string    `json:"colors"`
	ImageURLs       []string    `json:"imageUrls"`
	ReleaseDate     *string     `json:"releaseDate"`
	Attributes      []Attribute `json:"attributes,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty"`
}

// Attribute is a free-form key/value pair with no fixed slot on Product.
// Keys may repeat.
type Attribute struct {
	Key   string `json:"key" db:"attr_key"`
	Value string `json:"value" db:"attr_value"`
}

// IntakeResult is the uniform outcome of one submission. Product is set
// only on success.
type IntakeResult struct {
	Message string   `json:"message"`
	Product *Product `json:"product,omitempty"`
	Err     error    `json:"-"`
}

func (r IntakeResult) OK() bool { return r.Err == nil && r.Product != nil }
