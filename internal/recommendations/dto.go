package recommendations

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

type listResponse struct {
	Products []productResponse `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type filterRequest struct {
	Category string   `json:"category"`
	Tag      string   `json:"tag"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

func toProductResponse(p Product) productResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Tags:        tags,
	}
}

func toListResponse(r Result) listResponse {
	products := make([]productResponse, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, toProductResponse(p))
	}
	return listResponse{
		Products: products,
		Total:    r.Total,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}
