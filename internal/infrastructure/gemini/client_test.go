package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	text  string
	err   error
	resp  *genai.GenerateContentResponse
	parts []genai.Part
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text(f.text)}}}},
	}, nil
}

func newTestClient(listing, replies contentModel) *Client {
	return &Client{listing: listing, replies: replies, logger: logger.Nop{}}
}

func TestGenerateListing(t *testing.T) {
	model := &fakeModel{text: `{"title":"Veste Levi's ✨","description":"Superbe veste en jean."}`}
	c := newTestClient(model, nil)

	got, err := c.GenerateListing(context.Background(), &usecase.ListingPrompt{
		Image: []byte{0xff, 0xd8}, MimeType: "image/png", Price: "45.00", Size: "M", Brand: "Levi's", Comment: "très bon état",
	})
	require.NoError(t, err)
	assert.Equal(t, "Veste Levi's ✨", got.Title)
	assert.Equal(t, "Superbe veste en jean.", got.Description)

	require.Len(t, model.parts, 2)
	blob, ok := model.parts[0].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "image/png", blob.MIMEType)

	prompt, ok := model.parts[1].(genai.Text)
	require.True(t, ok)
	assert.Contains(t, string(prompt), "45.00€")
	assert.Contains(t, string(prompt), "très bon état")
}

func TestGenerateListing_DefaultsForEmptyFields(t *testing.T) {
	c := newTestClient(&fakeModel{text: `{"title":"  ","description":""}`}, nil)

	got, err := c.GenerateListing(context.Background(), &usecase.ListingPrompt{Image: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, defaultTitle, got.Title)
	assert.Equal(t, defaultDescription, got.Description)
}

func TestGenerateListing_UpstreamErrors(t *testing.T) {
	cases := map[string]*fakeModel{
		"transport":  {err: errors.New("rpc error: unavailable")},
		"no content": {resp: &genai.GenerateContentResponse{}},
		"bad json":   {text: "not json"},
	}

	for name, model := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newTestClient(model, nil).GenerateListing(context.Background(), &usecase.ListingPrompt{Image: []byte{1}})
			require.ErrorIs(t, err, e.ErrUpstreamUnavailable)
		})
	}
}

func TestGenerateReplies_ExactlyThree(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three",
			text: `{"responses":["a","b","c"]}`,
			want: []string{"a", "b", "c"},
		},
		{
			name: "padded",
			text: `{"responses":["a"]}`,
			want: []string{"a", cannedReplies[domain.TonePrecise], cannedReplies[domain.ToneBrief]},
		},
		{
			name: "truncated",
			text: `{"responses":["a","b","c","d"]}`,
			want: []string{"a", "b", "c"},
		},
		{
			name: "blank entry",
			text: `{"responses":["a"," ","c"]}`,
			want: []string{"a", cannedReplies[domain.TonePrecise], "c"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := newTestClient(nil, &fakeModel{text: tc.text}).GenerateReplies(context.Background(), "Est-ce dispo ?")
			require.NoError(t, err)
			require.Len(t, got, 3)

			assert.Equal(t, tc.want, domain.ReplyTexts(got))
			assert.Equal(t, domain.ToneWarm, got[0].Tone)
			assert.Equal(t, domain.TonePrecise, got[1].Tone)
			assert.Equal(t, domain.ToneBrief, got[2].Tone)
		})
	}
}

func TestGenerateReplies_PromptQuotesMessage(t *testing.T) {
	model := &fakeModel{text: `{"responses":["a","b","c"]}`}
	_, err := newTestClient(nil, model).GenerateReplies(context.Background(), `Prix "final" ?`)
	require.NoError(t, err)

	require.Len(t, model.parts, 1)
	assert.Contains(t, string(model.parts[0].(genai.Text)), `"Prix \"final\" ?"`)
}

func TestGenerateReplies_UpstreamError(t *testing.T) {
	_, err := newTestClient(nil, &fakeModel{err: errors.New("quota exceeded")}).GenerateReplies(context.Background(), "hello")
	require.ErrorIs(t, err, e.ErrUpstreamUnavailable)
}
