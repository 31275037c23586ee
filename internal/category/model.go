package category

// Category is the closed set of catalog categories.
type Category string

const (
	Phone     Category = "phone"
	Computer  Category = "computer"
	Tablet    Category = "tablet"
	Accessory Category = "accessory"
	Other     Category = "other"
)

var all = []Category{Phone, Computer, Tablet, Accessory, Other}

var names = map[Category]string{
	Phone:     "Phones",
	Computer:  "Computers",
	Tablet:    "Tablets",
	Accessory: "Accessories",
	Other:     "Other",
}

func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

func (c Category) Valid() bool {
	_, ok := names[c]
	return ok
}

func (c Category) Name() string {
	return names[c]
}

// Info is the listing shape of a category.
type Info struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}
