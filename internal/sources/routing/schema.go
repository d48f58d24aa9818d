package routing

// RoutesFile is the root structure of routes.yaml
//
//	broken: /not-found{?ref}
//	bookmarks:
//	  - name: about
//	    route: /about{?ref}
//	types:
//	  product: /products/{id}/{slug}{?ref}
//	blog_categories: [Announcements]
//	product_flavours:
//	  - value: Macaron
//	    label: Macarons
type RoutesFile struct {
	Broken          string            `yaml:"broken"`
	Bookmarks       []BookmarkRoute   `yaml:"bookmarks"`
	Types           map[string]string `yaml:"types"`
	BlogCategories  []string          `yaml:"blog_categories"`
	ProductFlavours []FlavourEntry    `yaml:"product_flavours"`
}

// BookmarkRoute binds a bookmark name to its page
type BookmarkRoute struct {
	Name  string `yaml:"name"`
	Route string `yaml:"route"`
}

// FlavourEntry is a product flavour as stored in content and its display label
type FlavourEntry struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}
