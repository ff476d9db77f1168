package airtable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSelectBuildsQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records": [{"id": "rec1", "fields": {"Name": "Ann"}}]}`))
	}))
	defer server.Close()

	client := NewClient("key", "appBase", WithBaseURL(server.URL))

	result, err := client.Select(context.Background(), "Doctors", SelectOptions{
		FilterFormula: `{Rating} > 4`,
		Fields:        []string{"Name", "Rating"},
		Sort:          []SortSpec{{Field: "Rating", Direction: "desc"}},
		MaxRecords:    5,
	})

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "rec1", result.Records[0].ID)

	assert.Equal(t, "/appBase/Doctors", gotPath)
	assert.Equal(t, "Bearer key", gotAuth)
	assert.Equal(t, []string{`{Rating} > 4`}, gotQuery["filterByFormula"])
	assert.Equal(t, []string{"Name", "Rating"}, gotQuery["fields[]"])
	assert.Equal(t, []string{"Rating"}, gotQuery["sort[0][field]"])
	assert.Equal(t, []string{"desc"}, gotQuery["sort[0][direction]"])
	assert.Equal(t, []string{"5"}, gotQuery["maxRecords"])
}

func TestClientSelectDefaultsMaxRecords(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"records": []}`))
	}))
	defer server.Close()

	client := NewClient("key", "appBase", WithBaseURL(server.URL))
	_, err := client.Select(context.Background(), "Doctors", SelectOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"20"}, gotQuery["maxRecords"])
}

func TestClientSelectSurfacesRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": {"type": "INVALID_FILTER_BY_FORMULA", "message": "The formula for filtering records is invalid"}}`))
	}))
	defer server.Close()

	client := NewClient("key", "appBase", WithBaseURL(server.URL))
	_, err := client.Select(context.Background(), "Doctors", SelectOptions{FilterFormula: "bogus("})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "The formula for filtering records is invalid")
}

func TestClientTableSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meta/bases/appBase/tables", r.URL.Path)
		w.Write([]byte(`{"tables": [
			{"name": "Doctors", "fields": [{"name": "Name", "type": "singleLineText"}]},
			{"name": "Clinics", "fields": [{"name": "City", "type": "singleLineText"}]}
		]}`))
	}))
	defer server.Close()

	client := NewClient("key", "appBase", WithBaseURL(server.URL))

	schema, err := client.TableSchema(context.Background(), "Doctors")
	require.NoError(t, err)
	assert.Equal(t, "Doctors", schema.Name)
	require.Len(t, schema.Fields, 1)
	assert.Equal(t, "Name", schema.Fields[0].Name)

	_, err = client.TableSchema(context.Background(), "Patients")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table Patients not found in base appBase")
}
