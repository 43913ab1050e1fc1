package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/number"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/combobox"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/pagination"
	"mesa-console/internal/i18n"
)

const productsPath = "/advertiser/products"

func productPath(id, action string) string {
	return productsPath + "/" + url.PathEscape(id) + "/" + action
}

func (h *Handler) productRoutes(r chi.Router) {
	r.Get("/", h.handleProducts)
	r.Get("/new", h.handleProductNew)
	r.Post("/new", h.handleProductCreate)
	r.Get("/{id}/edit", h.handleProductEdit)
	r.Post("/{id}/edit", h.handleProductUpdate)
	r.Get("/{id}/delete", h.handleProductDeleteDialog)
	r.Post("/{id}/delete", h.handleProductDelete)
}

func price(loc *i18n.Localizer, p float64) string {
	return loc.Number(number.Decimal(p, number.Scale(2)))
}

// handleProducts lists the catalog. A seller filter reads that seller's
// products, otherwise a category filter reads that category, otherwise the
// whole catalog is read.
func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	query := r.URL.Query()
	q := pagination.ParseQuery(query, pagination.DefaultTable)
	seller := strings.TrimSpace(query.Get("seller"))
	category := strings.TrimSpace(query.Get("category"))

	var products []domain.Product
	switch {
	case seller != "":
		products = h.deps.Products.GetBySeller(r.Context(), seller)
		if category != "" {
			kept := products[:0]
			for _, p := range products {
				if strings.EqualFold(p.Category, category) {
					kept = append(kept, p)
				}
			}
			products = kept
		}
	case category != "":
		products = h.deps.Products.GetByCategory(r.Context(), category)
	default:
		products = h.deps.Products.GetAll(r.Context())
	}
	rows, rng := paginate(products, q, func(p domain.Product) []string {
		return []string{p.Name, p.Description, p.Category}
	})

	sellers := h.deps.Sellers.GetAll(r.Context())
	sellerNames := make(map[string]string, len(sellers))
	sellerChoices := make([]views.Choice, 0, len(sellers))
	for _, s := range sellers {
		sellerNames[s.ID] = s.Name
		sellerChoices = append(sellerChoices, views.Choice{Value: s.ID, Label: s.Name})
	}

	cols := []views.Column[domain.Product]{
		views.TextColumn(loc.T("field.name"), func(p domain.Product) string { return p.Name }),
		views.TextColumn(loc.T("field.category"), func(p domain.Product) string { return p.Category }),
		views.TextColumn(loc.T("field.price"), func(p domain.Product) string { return price(loc, p.Price) }),
		views.TextColumn(loc.T("field.quantity"), func(p domain.Product) string { return loc.Number(p.Quantity) }),
		views.TextColumn(loc.T("field.seller"), func(p domain.Product) string {
			if name, ok := sellerNames[p.SellerID]; ok {
				return name
			}
			return p.SellerID
		}),
		{Header: loc.T("field.actions"), Cell: func(p domain.Product) templ.Component {
			return views.Actions(
				views.EditLink(loc, productPath(p.ID, "edit")),
				views.DeleteLink(loc, productPath(p.ID, "delete")),
			)
		}},
	}

	extra := url.Values{}
	if seller != "" {
		extra.Set("seller", seller)
	}
	if category != "" {
		extra.Set("category", category)
	}
	toolbar := views.ProductFilters(loc, productsPath, q.Search, sellerChoices, seller, category,
		views.Link(loc.T("action.new"), productsPath+"/new", "button"),
	)
	h.page(w, r, http.StatusOK, loc.T("nav.products"), views.ListPage(views.List{
		Title:   loc.T("nav.products"),
		Toolbar: toolbar,
		Table:   views.Table(cols, rows, loc.T("table.no_items")),
		Pager:   views.Pager(loc, rng, pageLink(productsPath, q, extra)),
	}))
}

func (h *Handler) productForm(r *http.Request, title, action string, in domain.ProductInput, errs views.FieldErrors, formErr string) templ.Component {
	loc := stateFrom(r.Context()).loc
	selected, _ := strconv.ParseInt(in.SellerID, 10, 64)
	box := combobox.New(h.sellerOptions(r.Context()), selected)
	box.Type(r.PostForm.Get("sellerId_query"))
	return views.FormPage(loc, views.Form{
		Title:  title,
		Action: action,
		Cancel: productsPath,
		Submit: loc.T("form.save"),
		Error:  formErr,
		Fields: []templ.Component{
			views.Input{Name: "name", Label: loc.T("field.name"), Value: in.Name, Required: true, Error: errs["name"]}.Render(),
			views.TextArea{Name: "description", Label: loc.T("field.description"), Value: in.Description, Error: errs["description"]}.Render(),
			views.Input{Name: "price", Label: loc.T("field.price"), Type: "number", Value: strconv.FormatFloat(in.Price, 'f', 2, 64), Error: errs["price"]}.Render(),
			views.Input{Name: "quantity", Label: loc.T("field.quantity"), Type: "number", Value: strconv.Itoa(in.Quantity), Error: errs["quantity"]}.Render(),
			views.Input{Name: "category", Label: loc.T("field.category"), Value: in.Category, Required: true, Error: errs["category"]}.Render(),
			views.Combobox{Name: "sellerId", Label: loc.T("field.seller"), Box: box, OptionsURL: "/options/sellers", Error: errs["sellerId"]}.Render(loc),
			views.Input{Name: "imageUrl", Label: loc.T("field.image_url"), Type: "url", Value: in.ImageURL, Error: errs["imageUrl"]}.Render(),
		},
	})
}

func readProduct(f *formReader) domain.ProductInput {
	return domain.ProductInput{
		Name:        f.str("name"),
		Description: f.str("description"),
		Price:       f.decimal("price"),
		Quantity:    int(f.integer("quantity")),
		Category:    f.str("category"),
		SellerID:    f.str("sellerId"),
		ImageURL:    f.str("imageUrl"),
	}
}

func (h *Handler) handleProductNew(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("product.new")
	h.page(w, r, http.StatusOK, title, h.productForm(r, title, productsPath+"/new", domain.ProductInput{}, nil, ""))
}

func (h *Handler) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("product.new")
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readProduct(f)
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.productForm(r, title, productsPath+"/new", in, errs, ""))
		return
	}
	if _, err = h.deps.Products.Create(r.Context(), in); err != nil {
		h.logger.ErrorContext(r.Context(), "create product", slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.productForm(r, title, productsPath+"/new", in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, productsPath)
}

func (h *Handler) loadProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.notFound(w, r)
		return nil, false
	}
	p, err := h.deps.Products.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get product", err)
		return nil, false
	}
	return p, true
}

func (h *Handler) handleProductEdit(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	in := domain.ProductInput{
		Name: p.Name, Description: p.Description, Price: p.Price, Quantity: p.Quantity,
		Category: p.Category, SellerID: p.SellerID, ImageURL: p.ImageURL,
	}
	title := loc.T("product.edit", i18n.Params{"name": p.Name})
	h.page(w, r, http.StatusOK, title, h.productForm(r, title, productPath(p.ID, "edit"), in, nil, ""))
}

func (h *Handler) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	id := chi.URLParam(r, "id")
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readProduct(f)
	title := loc.T("product.edit", i18n.Params{"name": in.Name})
	action := productPath(id, "edit")
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.productForm(r, title, action, in, errs, ""))
		return
	}
	if _, err = h.deps.Products.Update(r.Context(), id, in); err != nil {
		h.logger.ErrorContext(r.Context(), "update product", slog.String("id", id), slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.productForm(r, title, action, in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, productsPath)
}

func (h *Handler) productDeleteTarget(p *domain.Product) deleteTarget {
	products := h.deps.Products
	id := p.ID
	return deleteTarget{
		resource: "products",
		id:       id,
		kind:     "entity.product",
		name:     p.Name,
		action:   productPath(id, "delete"),
		back:     productsPath,
		del:      func(ctx context.Context) error { return products.Delete(ctx, id) },
	}
}

func (h *Handler) handleProductDeleteDialog(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.loadProduct(w, r); ok {
		h.showDelete(w, r, http.StatusOK, h.productDeleteTarget(p))
	}
}

func (h *Handler) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.loadProduct(w, r); ok {
		h.submitDelete(w, r, h.productDeleteTarget(p))
	}
}
