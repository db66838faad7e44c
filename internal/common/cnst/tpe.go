package cnst

// TPEModel represents a supported payment terminal model
type TPEModel string

const (
	// TPEModelDesk is the Ingenico Desk 5000 countertop terminal
	TPEModelDesk TPEModel = "Ingenico Desk 5000"
	// TPEModelMove is the Ingenico Move 5000 portable terminal
	TPEModelMove TPEModel = "Ingenico Move 5000"
)

// ConnectionType represents a connection-type list filter value
type ConnectionType string

const (
	// ConnectionEthernet filters records with an active Ethernet connection
	ConnectionEthernet ConnectionType = "ethernet"
	// ConnectionMobile filters records with an active 4G/5G connection
	ConnectionMobile ConnectionType = "4g5g"
)

const (
	// MaxMerchantCards is the upper bound on merchant cards per record
	MaxMerchantCards = 8

	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 6
)

const (
	// DefaultPage is the default page number for list requests
	DefaultPage = 1
	// DefaultPageSize is the default number of items per page
	DefaultPageSize = 10
	// MaxPageSize is the upper bound on items per page
	MaxPageSize = 100
)

// XClaims is the gin context key holding the validated JWT claims
const XClaims = "claims"
