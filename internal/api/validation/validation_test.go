package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/review-router/internal/api/dto"
	apperrors "github.com/spec-kit/review-router/pkg/util"
)

func TestSubmitTicketJSON(t *testing.T) {
	valid := []string{
		`{"reviewText":"Great","sourcePlatform":"Yelp","hasAttachment":true}`,
		`{"reviewText":""}`,
		`{}`,
		`{"reviewText":"ok","extra":1}`,
		`{"reviewText":null}`,
	}
	for _, body := range valid {
		assert.NoError(t, SubmitTicketJSON([]byte(body)), body)
	}
}

func TestSubmitTicketJSON_WrongTypes(t *testing.T) {
	err := SubmitTicketJSON([]byte(`{"reviewText":42,"hasAttachment":"yes"}`))
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Contains(t, de.Details, "reviewText")
	assert.Contains(t, de.Details, "hasAttachment")
}

func TestSubmitTicketJSON_NotJSON(t *testing.T) {
	for _, body := range []string{`{"reviewText":`, `not json`} {
		err := SubmitTicketJSON([]byte(body))
		require.Error(t, err, body)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	}
}

func TestSubmitTicketJSON_NotObject(t *testing.T) {
	err := SubmitTicketJSON([]byte(`["review"]`))
	assert.Error(t, err)
}

func TestStruct_Limits(t *testing.T) {
	assert.NoError(t, Struct(dto.SubmitTicketRequest{ReviewText: "fine", SourcePlatform: "Yelp"}))
	assert.NoError(t, Struct(dto.SubmitTicketRequest{ReviewText: strings.Repeat("long ", 10000), SourcePlatform: "Yelp"}))

	err := Struct(dto.SubmitTicketRequest{ReviewText: "ok", SourcePlatform: strings.Repeat("x", 65)})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "failed max=64", de.Details["SourcePlatform"])
}
