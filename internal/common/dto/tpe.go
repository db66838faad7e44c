package dto

// MerchantCard is one merchant-card entry attached to a terminal record
type MerchantCard struct {
	Numero         string `json:"numero"`
	NumeroSerieTPE string `json:"numero_serie_tpe"`
}

// CreateTPERequest represents a request to create a terminal record.
// NumberOfTPE is a pointer so that an omitted value defaults to 1 while
// an explicit 0 is rejected.
type CreateTPERequest struct {
	ServiceName          string         `json:"service_name" binding:"required"`
	ShopID               string         `json:"shop_id,omitempty"`
	RegisseurPrenom      string         `json:"regisseur_prenom,omitempty"`
	RegisseurNom         string         `json:"regisseur_nom,omitempty"`
	RegisseurTelephone   string         `json:"regisseur_telephone,omitempty"`
	RegisseursSuppleants string         `json:"regisseurs_suppleants,omitempty"`
	MerchantCards        []MerchantCard `json:"merchant_cards,omitempty"`
	TPEModel             string         `json:"tpe_model,omitempty"`
	NumberOfTPE          *int           `json:"number_of_tpe,omitempty"`
	ConnectionEthernet   bool           `json:"connection_ethernet"`
	Connection4G5G       bool           `json:"connection_4g5g"`
	NetworkIPAddress     string         `json:"network_ip_address,omitempty"`
	NetworkMask          string         `json:"network_mask,omitempty"`
	NetworkGateway       string         `json:"network_gateway,omitempty"`
	BackofficeActive     bool           `json:"backoffice_active"`
	BackofficeEmail      string         `json:"backoffice_email,omitempty"`
}

// UpdateTPERequest represents a partial update of a terminal record.
// Every field is a pointer: nil means "leave unchanged", a non-nil zero
// value means "explicitly cleared".
type UpdateTPERequest struct {
	ServiceName          *string         `json:"service_name,omitempty"`
	ShopID               *string         `json:"shop_id,omitempty"`
	RegisseurPrenom      *string         `json:"regisseur_prenom,omitempty"`
	RegisseurNom         *string         `json:"regisseur_nom,omitempty"`
	RegisseurTelephone   *string         `json:"regisseur_telephone,omitempty"`
	RegisseursSuppleants *string         `json:"regisseurs_suppleants,omitempty"`
	MerchantCards        *[]MerchantCard `json:"merchant_cards,omitempty"`
	TPEModel             *string         `json:"tpe_model,omitempty"`
	NumberOfTPE          *int            `json:"number_of_tpe,omitempty"`
	ConnectionEthernet   *bool           `json:"connection_ethernet,omitempty"`
	Connection4G5G       *bool           `json:"connection_4g5g,omitempty"`
	NetworkIPAddress     *string         `json:"network_ip_address,omitempty"`
	NetworkMask          *string         `json:"network_mask,omitempty"`
	NetworkGateway       *string         `json:"network_gateway,omitempty"`
	BackofficeActive     *bool           `json:"backoffice_active,omitempty"`
	BackofficeEmail      *string         `json:"backoffice_email,omitempty"`
}

// TPEListQuery holds the list-view query parameters
type TPEListQuery struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	Search         string `form:"search"`
	TPEModel       string `form:"tpe_model"`
	ConnectionType string `form:"connection_type"`
}
