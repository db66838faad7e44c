package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Valid reports whether the role is one of the two known values
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an operator account
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(50);not null;uniqueIndex"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(100);index"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MerchantCard is one merchant-card reference on a terminal record
type MerchantCard struct {
	Numero         string `json:"numero"`
	NumeroSerieTPE string `json:"numero_serie_tpe"`
}

// MerchantCards is an ordered merchant-card list stored as JSON text
type MerchantCards []MerchantCard

// Value implements driver.Valuer
func (m MerchantCards) Value() (driver.Value, error) {
	if m == nil {
		m = MerchantCards{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (m *MerchantCards) Scan(value any) error {
	if value == nil {
		*m = MerchantCards{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported merchant_cards column type %T", value)
	}
	if len(data) == 0 {
		*m = MerchantCards{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// TPE represents a payment-terminal installation record
type TPE struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	ServiceName string `json:"service_name" gorm:"type:varchar(200);not null;index"`
	ShopID      string `json:"shop_id" gorm:"type:varchar(50);not null;uniqueIndex"`

	RegisseurPrenom      string `json:"regisseur_prenom,omitempty" gorm:"type:varchar(100)"`
	RegisseurNom         string `json:"regisseur_nom,omitempty" gorm:"type:varchar(100)"`
	RegisseurTelephone   string `json:"regisseur_telephone,omitempty" gorm:"type:varchar(20)"`
	RegisseursSuppleants string `json:"regisseurs_suppleants,omitempty" gorm:"type:text"`

	MerchantCards MerchantCards `json:"merchant_cards" gorm:"type:text"` // JSON stored as text

	TPEModel    string `json:"tpe_model,omitempty" gorm:"type:varchar(100)"`
	NumberOfTPE int    `json:"number_of_tpe" gorm:"not null;default:1"`

	ConnectionEthernet bool `json:"connection_ethernet" gorm:"not null;default:false"`
	Connection4G5G     bool `json:"connection_4g5g" gorm:"column:connection_4g5g;not null;default:false"`

	// Meaningful only while ConnectionEthernet is true; cleared otherwise.
	NetworkIPAddress string `json:"network_ip_address,omitempty" gorm:"type:varchar(45)"`
	NetworkMask      string `json:"network_mask,omitempty" gorm:"type:varchar(45)"`
	NetworkGateway   string `json:"network_gateway,omitempty" gorm:"type:varchar(45)"`

	BackofficeActive bool   `json:"backoffice_active" gorm:"not null;default:false"`
	BackofficeEmail  string `json:"backoffice_email,omitempty" gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the historical table name
func (TPE) TableName() string {
	return "tpes"
}

// TPEFilter holds the conjunctive list filters
type TPEFilter struct {
	Search         string // case-insensitive substring on service_name or shop_id
	TPEModel       string // exact model match
	ConnectionType string // "ethernet" or "4g5g"
}

// TPEStats holds the dashboard summary counts
type TPEStats struct {
	Total                 int64 `json:"total"`
	DeskCount             int64 `json:"desk_count"`
	MoveCount             int64 `json:"move_count"`
	EthernetCount         int64 `json:"ethernet_count"`
	MobileCount           int64 `json:"mobile_count"`
	BackofficeActiveCount int64 `json:"backoffice_active_count"`
}
