package client_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rag/client"
	"github.com/viant/rag/client/auth/mock"
	"github.com/viant/rag/schema"
	"net/http"
	"strings"
	"testing"
)

func TestClient_Publications(t *testing.T) {
	ctx := context.Background()
	profile := &schema.FacultyProfile{FacultyID: "f-1", Name: "Grace Hopper", Affiliations: "Yale", HIndex: 12, Interests: []string{"compilers"}}
	articles := []*schema.Article{
		{Title: "A-0 System", Year: 1952, Citations: 40},
		{Title: "FLOW-MATIC", Year: 1955, Citations: 30},
		{Title: "COBOL", Year: 1959, Citations: 90},
	}
	server, err := mock.NewHTTPTestServer(mock.WithUser("Ada", "Lovelace", email, password), mock.WithFaculty(profile, articles...))
	require.NoError(t, err)
	defer server.Close()
	aClient, err := client.New(server.URL)
	require.NoError(t, err)
	login(t, aClient)

	summaries, err := aClient.UploadFacultyList(ctx, "faculty.csv", strings.NewReader("faculty_id,name\nf-1,Grace Hopper\nf-2,Alan Turing\n"), 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].PublicationCount)
	assert.Equal(t, "Alan Turing", summaries[1].Name)

	batches, err := aClient.FacultyBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "faculty.csv", batches[0].FileName)
	assert.Equal(t, 2, batches[0].FacultyCount)

	batchSummaries, err := aClient.BatchSummaries(ctx, batches[0].ID)
	require.NoError(t, err)
	assert.Len(t, batchSummaries, 2)

	actualProfile, err := aClient.FacultyProfile(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, profile, actualProfile)
	_, err = aClient.FacultyProfile(ctx, "f-404")
	assert.True(t, client.IsNotFound(err))

	testCases := []struct {
		description string
		page        int
		size        int
		titles      []string
	}{
		{description: "first page", page: 0, size: 2, titles: []string{"A-0 System", "FLOW-MATIC"}},
		{description: "last page", page: 1, size: 2, titles: []string{"COBOL"}},
		{description: "past the end", page: 5, size: 2, titles: []string{}},
		{description: "default size", page: 0, titles: []string{"A-0 System", "FLOW-MATIC", "COBOL"}},
	}
	for _, testCase := range testCases {
		page, err := aClient.FacultyArticles(ctx, "f-1", testCase.page, testCase.size)
		require.NoError(t, err, testCase.description)
		titles := []string{}
		for _, article := range page {
			titles = append(titles, article.Title)
		}
		assert.Equal(t, testCase.titles, titles, testCase.description)
	}

	text, err := aClient.FacultySummaryText(ctx, "f-1", 1953, 0)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper published 2 articles", text)

	server.ExpireAccessTokens()
	report, err := aClient.ExportFacultyProfile(ctx, "f-1", schema.ExportExcel)
	require.NoError(t, err)
	assert.Equal(t, "f-1_report.xlsx", report.FileName)
	assert.Contains(t, report.ContentType, "spreadsheetml")
	assert.Contains(t, string(report.Data), "COBOL (1959)")

	_, err = aClient.ExportFacultyProfile(ctx, "f-1", schema.ExportFormat("pdf"))
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err))

	require.NoError(t, aClient.DeleteFacultyBatch(ctx, batches[0].ID))
	batches, err = aClient.FacultyBatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, batches)
}
