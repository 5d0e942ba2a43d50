package adzuna

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func searchMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/search.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_AdzunaClient_Search_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return strings.HasPrefix(req.URL.String(), "https://api.adzuna.com/v1/api/jobs/us/search/1?") &&
			req.URL.Query().Get("what") == "platform engineer" &&
			req.URL.Query().Get("app_id") == "test-id"
	})).Return(searchMock())

	client := NewClient("test-id", "test-key", "us")
	client.SetHTTPClient(mockClient)

	params := SearchParameters{
		What:           "platform engineer",
		Where:          "austin",
		Page:           1,
		ResultsPerPage: 50,
	}
	postings, err := client.Search(context.Background(), params)
	assert.NoError(err)

	assert.True(len(postings) == 2)
	assert.Equal(postings[0].ID, "5021733810")
	assert.Equal(postings[0].Company.DisplayName, "Northwind Labs")
	assert.Equal(postings[1].ContractType, "contract")
}

func Test_AdzunaClient_Search_WhenNoCredentials_ShouldReturnError(t *testing.T) {

	client := NewClient("", "", "us")

	_, err := client.Search(context.Background(), SearchParameters{Page: 1})
	assert.Error(t, err)
}
