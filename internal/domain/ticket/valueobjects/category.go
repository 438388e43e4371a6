package valueobjects

import "fmt"

type Category string

const (
	CategoryBilling  Category = "billing"
	CategoryTech     Category = "tech"
	CategoryShipping Category = "shipping"
	CategoryOther    Category = "other"
)

var validCategories = map[Category]bool{
	CategoryBilling:  true,
	CategoryTech:     true,
	CategoryShipping: true,
	CategoryOther:    true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func (c Category) IsBilling() bool {
	return c == CategoryBilling
}

func (c Category) IsTech() bool {
	return c == CategoryTech
}

func (c Category) IsShipping() bool {
	return c == CategoryShipping
}

func (c Category) IsOther() bool {
	return c == CategoryOther
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
