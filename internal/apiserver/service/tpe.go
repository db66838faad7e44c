package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/common/cnst"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"gorm.io/gorm"
)

// shopIDAttempts bounds the collision-retry loop for generated shop ids
const shopIDAttempts = 10

// TPEService validates and normalizes terminal records before they
// reach the store. It is the single owner of the conditional-field
// rules and the shop-id generation scheme.
type TPEService struct {
	db database.Database
}

// NewTPEService creates a new terminal record service
func NewTPEService(db database.Database) *TPEService {
	return &TPEService{db: db}
}

// NormalizeCreate validates a create request and builds the record to
// persist. A missing shop_id is generated; a submitted one is checked
// for uniqueness inside the caller's transaction.
func (s *TPEService) NormalizeCreate(ctx context.Context, req *dto.CreateTPERequest) (*database.TPE, error) {
	if strings.TrimSpace(req.ServiceName) == "" {
		return nil, errorx.ErrServiceNameRequired
	}
	if len(req.MerchantCards) > cnst.MaxMerchantCards {
		return nil, errorx.ErrTooManyMerchantCards.WithDetail("count", len(req.MerchantCards))
	}
	if err := validateTPEModel(req.TPEModel); err != nil {
		return nil, err
	}

	numberOfTPE := 1
	if req.NumberOfTPE != nil {
		if *req.NumberOfTPE < 1 {
			return nil, errorx.ErrInvalidNumberOfTPE.WithDetail("number_of_tpe", *req.NumberOfTPE)
		}
		numberOfTPE = *req.NumberOfTPE
	}

	tpe := &database.TPE{
		ServiceName:          req.ServiceName,
		ShopID:               req.ShopID,
		RegisseurPrenom:      req.RegisseurPrenom,
		RegisseurNom:         req.RegisseurNom,
		RegisseurTelephone:   req.RegisseurTelephone,
		RegisseursSuppleants: req.RegisseursSuppleants,
		MerchantCards:        toModelCards(req.MerchantCards),
		TPEModel:             req.TPEModel,
		NumberOfTPE:          numberOfTPE,
		ConnectionEthernet:   req.ConnectionEthernet,
		Connection4G5G:       req.Connection4G5G,
		NetworkIPAddress:     req.NetworkIPAddress,
		NetworkMask:          req.NetworkMask,
		NetworkGateway:       req.NetworkGateway,
		BackofficeActive:     req.BackofficeActive,
		BackofficeEmail:      req.BackofficeEmail,
	}

	if err := stripConditionalFields(tpe); err != nil {
		return nil, err
	}

	if tpe.ShopID == "" {
		shopID, err := s.generateShopID(ctx)
		if err != nil {
			return nil, err
		}
		tpe.ShopID = shopID
	}

	return tpe, nil
}

// NormalizeUpdate applies a partial update onto an existing record.
// Nil fields leave the current value untouched; shop_id is immutable.
func (s *TPEService) NormalizeUpdate(existing *database.TPE, req *dto.UpdateTPERequest) error {
	if req.ShopID != nil && *req.ShopID != existing.ShopID {
		return errorx.ErrShopIDImmutable
	}
	if req.ServiceName != nil {
		if strings.TrimSpace(*req.ServiceName) == "" {
			return errorx.ErrServiceNameRequired
		}
		existing.ServiceName = *req.ServiceName
	}
	if req.MerchantCards != nil {
		if len(*req.MerchantCards) > cnst.MaxMerchantCards {
			return errorx.ErrTooManyMerchantCards.WithDetail("count", len(*req.MerchantCards))
		}
		existing.MerchantCards = toModelCards(*req.MerchantCards)
	}
	if req.TPEModel != nil {
		if err := validateTPEModel(*req.TPEModel); err != nil {
			return err
		}
		existing.TPEModel = *req.TPEModel
	}
	if req.NumberOfTPE != nil {
		if *req.NumberOfTPE < 1 {
			return errorx.ErrInvalidNumberOfTPE.WithDetail("number_of_tpe", *req.NumberOfTPE)
		}
		existing.NumberOfTPE = *req.NumberOfTPE
	}

	if req.RegisseurPrenom != nil {
		existing.RegisseurPrenom = *req.RegisseurPrenom
	}
	if req.RegisseurNom != nil {
		existing.RegisseurNom = *req.RegisseurNom
	}
	if req.RegisseurTelephone != nil {
		existing.RegisseurTelephone = *req.RegisseurTelephone
	}
	if req.RegisseursSuppleants != nil {
		existing.RegisseursSuppleants = *req.RegisseursSuppleants
	}
	if req.ConnectionEthernet != nil {
		existing.ConnectionEthernet = *req.ConnectionEthernet
	}
	if req.Connection4G5G != nil {
		existing.Connection4G5G = *req.Connection4G5G
	}
	if req.NetworkIPAddress != nil {
		existing.NetworkIPAddress = *req.NetworkIPAddress
	}
	if req.NetworkMask != nil {
		existing.NetworkMask = *req.NetworkMask
	}
	if req.NetworkGateway != nil {
		existing.NetworkGateway = *req.NetworkGateway
	}
	if req.BackofficeActive != nil {
		existing.BackofficeActive = *req.BackofficeActive
	}
	if req.BackofficeEmail != nil {
		existing.BackofficeEmail = *req.BackofficeEmail
	}

	return stripConditionalFields(existing)
}

// stripConditionalFields drops network fields without an Ethernet
// connection and the backoffice email without an active backoffice,
// then validates what remains.
func stripConditionalFields(tpe *database.TPE) error {
	if !tpe.ConnectionEthernet {
		tpe.NetworkIPAddress = ""
		tpe.NetworkMask = ""
		tpe.NetworkGateway = ""
	}
	if !tpe.BackofficeActive {
		tpe.BackofficeEmail = ""
		return nil
	}
	if _, err := mail.ParseAddress(tpe.BackofficeEmail); err != nil {
		return errorx.ErrInvalidBackofficeEmail.WithDetail("backoffice_email", tpe.BackofficeEmail)
	}
	return nil
}

func validateTPEModel(model string) error {
	switch cnst.TPEModel(model) {
	case "", cnst.TPEModelDesk, cnst.TPEModelMove:
		return nil
	default:
		return errorx.ErrInvalidTPEModel.WithDetail("tpe_model", model)
	}
}

// generateShopID produces a unique shop identifier, retrying on the
// unlikely collision with an existing record.
func (s *TPEService) generateShopID(ctx context.Context) (string, error) {
	for i := 0; i < shopIDAttempts; i++ {
		candidate := "SHOP-" + strings.ToUpper(uuid.New().String()[:8])

		_, err := s.db.GetTPEByShopID(ctx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not generate a unique shop id after %d attempts", shopIDAttempts)
}

func toModelCards(cards []dto.MerchantCard) database.MerchantCards {
	out := make(database.MerchantCards, len(cards))
	for i, card := range cards {
		out[i] = database.MerchantCard(card)
	}
	return out
}
