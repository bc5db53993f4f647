package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"rental-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localFixture() *entity.LocalProperty {
	synced := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &entity.LocalProperty{
		OwnerRezID:             42,
		Name:                   "Local name",
		Description:            "Local description",
		Amenities:              []string{"wifi"},
		Rules:                  []string{"no parties"},
		Status:                 "Active",
		IsVerified:             true,
		Images:                 []string{"https://img.example.com/local.jpg"},
		CreatedAt:              time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:              time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		LastSyncedWithOwnerRez: &synced,
	}
}

func decode(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMergeProperty_IsTotal(t *testing.T) {
	remote := remoteProperty(t, `{"id":42,"name":"Remote name"}`)
	local := localFixture()

	tests := []struct {
		name   string
		remote *entity.RemoteProperty
		local  *entity.LocalProperty
		want   string
	}{
		{"both", remote, local, SourceMerged},
		{"remote only", remote, nil, SourceRemoteOnly},
		{"local only", nil, local, SourceLocalOnly},
		{"neither", nil, nil, SourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MergeProperty(tt.remote, tt.local, "404 - Not found")
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Source())

			_, found := result.(FoundProperty)
			assert.Equal(t, tt.want != SourceNotFound, found)
		})
	}
}

func TestMergeProperty_RemoteWinsAndLocalDataIsNested(t *testing.T) {
	remote := remoteProperty(t, `{"id":42,"name":"Remote name","description":"Remote description","bedrooms":3}`)

	out := decode(t, MergeProperty(remote, localFixture(), ""))

	assert.Equal(t, "Remote name", out["name"])
	assert.Equal(t, "Remote description", out["description"])
	assert.Equal(t, float64(3), out["bedrooms"])

	localData, ok := out["localData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Local description", localData["description"])
	assert.Equal(t, "Active", localData["status"])
	assert.Equal(t, true, localData["isVerified"])
	assert.Equal(t, "2025-01-02T03:04:05Z", localData["lastSyncedWithOwnerRez"])
	assert.Len(t, localData, 13)

	// the local name is not part of localData
	_, hasName := localData["name"]
	assert.False(t, hasName)
}

func TestMergeProperty_RemoteOnlyHasNullLocalData(t *testing.T) {
	out := decode(t, MergeProperty(remoteProperty(t, `{"id":42}`), nil, ""))

	v, ok := out["localData"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestMergeProperty_LocalOnlyCarriesRemoteError(t *testing.T) {
	out := decode(t, MergeProperty(nil, localFixture(), "500 - Unknown error"))

	assert.Equal(t, "Local description", out["description"])
	assert.Equal(t, float64(42), out["ownerRezId"])
	assert.Equal(t, "500 - Unknown error", out["ownerRezError"])
	v, ok := out["ownerRezData"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestMergeProperty_NotFoundKeepsRemoteError(t *testing.T) {
	result := MergeProperty(nil, nil, "Failed to fetch from OwnerRez API")
	nf, ok := result.(NotFound)
	require.True(t, ok)
	assert.Equal(t, "Failed to fetch from OwnerRez API", nf.RemoteError)
}

func TestMergeProperty_DeterministicOutput(t *testing.T) {
	raw := `{"id":42,"zeta":1,"alpha":{"b":2,"a":1},"name":"Remote"}`

	first, err := json.Marshal(MergeProperty(remoteProperty(t, raw), localFixture(), ""))
	require.NoError(t, err)
	second, err := json.Marshal(MergeProperty(remoteProperty(t, raw), localFixture(), ""))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestMergeProperty_DoesNotMutateInputs(t *testing.T) {
	remote := remoteProperty(t, `{"id":42}`)
	result := MergeProperty(remote, nil, "").(FoundProperty)

	_ = result.WithThumbnails(entity.Thumbnails{Small: "s", Medium: "m", Large: "l"})

	_, ok := remote.Attributes["thumbnail_url"]
	assert.False(t, ok)
}

func TestFoundProperty_ThumbnailAccessors(t *testing.T) {
	remote := remoteProperty(t, `{"id":42,"thumbnail_url":"s"}`)
	merged := MergeProperty(remote, localFixture(), "").(FoundProperty)

	assert.Equal(t, "42", merged.PropertyID())
	assert.Equal(t, "s", merged.Thumbnails().Small)
	assert.False(t, merged.Thumbnails().Complete())
	assert.Equal(t, "s", merged.SourceImage())

	local := MergeProperty(nil, localFixture(), "err").(FoundProperty)
	assert.Equal(t, "42", local.PropertyID())
	assert.Equal(t, "https://img.example.com/local.jpg", local.SourceImage())

	enriched := local.WithThumbnails(entity.Thumbnails{Small: "s", Medium: "m", Large: "l"})
	assert.True(t, enriched.Thumbnails().Complete())
	assert.False(t, local.Thumbnails().Complete())
}
