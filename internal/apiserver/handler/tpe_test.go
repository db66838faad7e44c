package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/apiserver/service"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestTPE_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/tpe", "/api/tpe/1", "/api/tpe/stats/summary", "/api/tpe/export/excel"} {
		w := env.request(t, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCreateTPE_ScenarioCafeCentral(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName:        "Cafe Central",
		ConnectionEthernet: true,
		NetworkIPAddress:   "192.168.1.50",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeJSON[database.TPE](t, w)
	assert.NotEmpty(t, created.ShopID)
	assert.Equal(t, "192.168.1.50", created.NetworkIPAddress)

	// The record shows up under the ethernet connection filter.
	list := env.request(t, "GET", "/api/tpe?connection_type=ethernet", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	page := decodeJSON[PaginatedTPEResponse](t, list)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
}

func TestCreateTPE_Rejections(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	// number_of_tpe = 0 is rejected and nothing is persisted.
	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName: "x", NumberOfTPE: intPtr(0),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A ninth merchant card is rejected.
	w = env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName:   "x",
		MerchantCards: make([]dto.MerchantCard, 9),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list := env.request(t, "GET", "/api/tpe", token, nil)
	page := decodeJSON[PaginatedTPEResponse](t, list)
	assert.Zero(t, page.Total)
}

func TestCreateTPE_DuplicateShopID(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{ServiceName: "a", ShopID: "SHOP-SAME0001"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{ServiceName: "b", ShopID: "SHOP-SAME0001"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateTPE_PartialAndImmutability(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName: "Mairie", NumberOfTPE: intPtr(2),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeJSON[database.TPE](t, w)

	// Partial update: omitted fields keep their values.
	w = env.request(t, "PUT", fmt.Sprintf("/api/tpe/%d", created.ID), token, dto.UpdateTPERequest{
		ServiceName: strPtr("Mairie Annexe"),
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeJSON[database.TPE](t, w)
	assert.Equal(t, "Mairie Annexe", updated.ServiceName)
	assert.Equal(t, 2, updated.NumberOfTPE)
	assert.Equal(t, created.ShopID, updated.ShopID)

	// shop_id cannot change once set.
	w = env.request(t, "PUT", fmt.Sprintf("/api/tpe/%d", created.ID), token, dto.UpdateTPERequest{
		ShopID: strPtr("SHOP-OTHER001"),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTPE_DisableEthernetDropsNetwork(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName:        "Cafe",
		ConnectionEthernet: true,
		NetworkIPAddress:   "10.0.0.2",
		NetworkMask:        "255.255.255.0",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeJSON[database.TPE](t, w)

	w = env.request(t, "PUT", fmt.Sprintf("/api/tpe/%d", created.ID), token, dto.UpdateTPERequest{
		ConnectionEthernet: boolPtr(false),
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeJSON[database.TPE](t, w)
	assert.Empty(t, updated.NetworkIPAddress)
	assert.Empty(t, updated.NetworkMask)
}

func TestGetDeleteTPE_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "GET", "/api/tpe/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, "DELETE", "/api/tpe/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTPE(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{ServiceName: "gone"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeJSON[database.TPE](t, w)

	w = env.request(t, "DELETE", fmt.Sprintf("/api/tpe/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, "GET", fmt.Sprintf("/api/tpe/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTPEs_PaginationEnvelope(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	for i := 0; i < 12; i++ {
		w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
			ServiceName: fmt.Sprintf("Service %02d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, "GET", "/api/tpe?page=2&page_size=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeJSON[PaginatedTPEResponse](t, w)
	assert.EqualValues(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 2, page.Page)

	// Empty store still reports one page.
	empty := newTestEnv(t)
	_, token2 := empty.seedUser(t, "op", "secret1", database.RoleUser)
	w = empty.request(t, "GET", "/api/tpe", token2, nil)
	page = decodeJSON[PaginatedTPEResponse](t, w)
	assert.Zero(t, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.NotNil(t, page.Items)
}

func TestListTPEs_InvalidConnectionType(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "GET", "/api/tpe?connection_type=wifi", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTPEStats(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName: "a", TPEModel: "Ingenico Desk 5000", ConnectionEthernet: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
		ServiceName: "b", TPEModel: "Ingenico Move 5000", Connection4G5G: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, "GET", "/api/tpe/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeJSON[database.TPEStats](t, w)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.DeskCount)
	assert.EqualValues(t, 1, stats.MoveCount)
	assert.EqualValues(t, 1, stats.EthernetCount)
	assert.EqualValues(t, 1, stats.MobileCount)
}

func TestExportTPEs_IgnoresFilters(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "op", "secret1", database.RoleUser)

	for i := 0; i < 3; i++ {
		w := env.request(t, "POST", "/api/tpe", token, dto.CreateTPERequest{
			ServiceName: fmt.Sprintf("Service %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, "GET", "/api/tpe/export/excel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excelContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=tpe_export_")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(service.ExportSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + all records regardless of list filters
}
