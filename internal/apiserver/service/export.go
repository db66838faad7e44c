package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the name of the worksheet holding the record list
const ExportSheetName = "TPE List"

var exportHeaders = []any{
	"ID", "Service Name", "ShopID", "Régisseur Prénom", "Régisseur Nom",
	"Régisseur Téléphone", "Régisseurs Suppléants", "Cartes Commerçants",
	"Modèle TPE", "Nombre de TPE", "Connexion Ethernet", "Connexion 4G/5G",
	"IP Address", "Mask", "Gateway", "Backoffice Actif", "Backoffice Email",
	"Date de création",
}

// ExportTPEs serializes every record into an xlsx workbook, one row per
// record in the given order. Same input always yields the same rows.
func ExportTPEs(tpes []*database.TPE) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, tpe := range tpes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			tpe.ID,
			tpe.ServiceName,
			tpe.ShopID,
			tpe.RegisseurPrenom,
			tpe.RegisseurNom,
			tpe.RegisseurTelephone,
			tpe.RegisseursSuppleants,
			flattenCards(tpe.MerchantCards),
			tpe.TPEModel,
			tpe.NumberOfTPE,
			ouiNon(tpe.ConnectionEthernet),
			ouiNon(tpe.Connection4G5G),
			tpe.NetworkIPAddress,
			tpe.NetworkMask,
			tpe.NetworkGateway,
			ouiNon(tpe.BackofficeActive),
			tpe.BackofficeEmail,
			tpe.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ExportFilename builds the attachment name with an export timestamp
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("tpe_export_%s.xlsx", now.Format("20060102_150405"))
}

// flattenCards renders the ordered card list into one delimited cell,
// keeping both sub-fields so the export stays lossless.
func flattenCards(cards database.MerchantCards) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = fmt.Sprintf("%s (%s)", card.Numero, card.NumeroSerieTPE)
	}
	return strings.Join(parts, "; ")
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
