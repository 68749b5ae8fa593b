package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashenlab/paramforge/pkg/archive"
	"github.com/ashenlab/paramforge/pkg/bank"
	"github.com/ashenlab/paramforge/pkg/codec"
	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/param"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

// Prometheus collectors register globally; one shared instance keeps the
// tests from double-registering.
var testMetrics = NewMetrics()

func testServer(t *testing.T) *Server {
	t.Helper()
	reg := enums.NewRegistry()
	def := &paramdef.ParamDef{
		ParamName: "WEAPON_PARAM_ST",
		Fields: []paramdef.FieldDef{
			{Name: "attackBase", InternalType: "u16", Size: 2},
			{Name: "pad0", InternalType: "dummy8", Size: 2},
		},
	}
	defs := paramdef.NewCache(paramdef.StaticProvider{"WEAPON_PARAM_ST": def})

	tbl := param.New(def, reg)
	e := codec.NewEntry(def, reg)
	require.NoError(t, e.Set("attackBase", codec.IntValue(42)))
	e.Name = "Longsword"
	require.NoError(t, tbl.Put(7, e))
	blob, err := tbl.Pack()
	require.NoError(t, err)

	a, err := archive.OpenDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, a.Write("Weapon.param", blob))

	b := bank.New(a, defs, reg, nil)
	require.NoError(t, b.Load())

	return NewServer(b, ServerConfig{}, testMetrics, nil)
}

func doGet(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)
	rec, resp := doGet(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestHandleListTables(t *testing.T) {
	s := testServer(t)
	rec, resp := doGet(t, s, "/api/v1/tables")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var tables []TableSummary
	require.NoError(t, json.Unmarshal(raw, &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "Weapon.param", tables[0].Entry)
	assert.Equal(t, "WEAPON_PARAM_ST", tables[0].Param)
	assert.Equal(t, 1, tables[0].Entries)
}

func TestHandleGetTable(t *testing.T) {
	s := testServer(t)
	rec, resp := doGet(t, s, "/api/v1/tables/Weapon.param")
	require.Equal(t, http.StatusOK, rec.Code)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail TableDetail
	require.NoError(t, json.Unmarshal(raw, &detail))
	assert.Equal(t, "WEAPON_PARAM_ST", detail.Param)
	assert.Equal(t, []string{"attackBase", "pad0"}, detail.Fields)
	require.Len(t, detail.Rows, 1)
	assert.Equal(t, int32(7), detail.Rows[0].ID)
	assert.Equal(t, "Longsword", detail.Rows[0].Name)

	rec, _ = doGet(t, s, "/api/v1/tables/Nope.param")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetEntry(t *testing.T) {
	s := testServer(t)
	rec, resp := doGet(t, s, "/api/v1/tables/Weapon.param/entries/7")
	require.Equal(t, http.StatusOK, rec.Code)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail struct {
		ID     int32  `json:"id"`
		Name   string `json:"name"`
		Fields []struct {
			Name  string      `json:"name"`
			Value json.Number `json:"value"`
		} `json:"fields"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&detail))
	assert.Equal(t, int32(7), detail.ID)
	assert.Equal(t, "Longsword", detail.Name)
	require.Len(t, detail.Fields, 1)
	assert.Equal(t, "attackBase", detail.Fields[0].Name)
	assert.Equal(t, json.Number("42"), detail.Fields[0].Value)

	rec, _ = doGet(t, s, "/api/v1/tables/Weapon.param/entries/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doGet(t, s, "/api/v1/tables/Weapon.param/entries/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
