package schema

// CoreTaxonomyTable represents a flat name/slug classification table
// ('core.category' and 'core.genre' share the layout)
type CoreTaxonomyTable struct {
	Table string
	ID    string
	Name  string
	Slug  string

	// SlugConstraint is the unique constraint guarding Slug
	SlugConstraint string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreTaxonomyTable{
	Table:          "core.category",
	ID:             "id",
	Name:           "name",
	Slug:           "slug",
	SlugConstraint: "uq_category_slug",
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = CoreTaxonomyTable{
	Table:          "core.genre",
	ID:             "id",
	Name:           "name",
	Slug:           "slug",
	SlugConstraint: "uq_genre_slug",
}

// Columns returns all standard column names
func (t CoreTaxonomyTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
