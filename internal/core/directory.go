package core

// Directory is a lookup of category id to display metadata. Lookups for
// unknown ids degrade to the Uncategorized placeholder instead of failing,
// so a deleted category never breaks aggregation.
type Directory map[int64]Category

// Uncategorized is the synthetic placeholder substituted when a
// transaction's category reference cannot be resolved.
var Uncategorized = Category{Name: "Uncategorized", Color: "#94a3b8"}

// NewDirectory builds a Directory from a category list.
func NewDirectory(categories []Category) Directory {
	dir := make(Directory, len(categories))
	for _, c := range categories {
		dir[c.ID] = c
	}
	return dir
}

// Resolve returns the category for id, or Uncategorized when absent.
func (d Directory) Resolve(id int64) Category {
	if c, ok := d[id]; ok {
		return c
	}
	return Uncategorized
}

// EligibleCategories filters the categories selectable for a transaction
// type. Income and expense transactions take categories of the matching
// kind only. Saving and investment movements are conceptually funded from
// income, so they accept income-kind categories in addition to categories
// of their own dedicated kind.
func EligibleCategories(categories []Category, t TransactionType) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		switch t {
		case Saving, Investment:
			if c.Kind == CategoryKind(Income) || c.Kind == CategoryKind(t) {
				out = append(out, c)
			}
		default:
			if c.Kind == CategoryKind(t) {
				out = append(out, c)
			}
		}
	}
	return out
}
