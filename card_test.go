package cardscan_test

import (
	"encoding/json"
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid card", func(t *testing.T) {
		t.Parallel()
		card := &cardscan.Card{Label: "Google", MainLink: "https://example.com/google"}
		assert.NoError(t, card.Validate())
	})

	t.Run("missing label", func(t *testing.T) {
		t.Parallel()
		card := &cardscan.Card{MainLink: "https://example.com/google"}
		err := card.Validate()
		require.Error(t, err)
		assert.Equal(t, cardscan.EINVALID, cardscan.ErrorCode(err))
	})

	t.Run("missing main link", func(t *testing.T) {
		t.Parallel()
		card := &cardscan.Card{Label: "Google"}
		err := card.Validate()
		require.Error(t, err)
		assert.Equal(t, cardscan.EINVALID, cardscan.ErrorCode(err))
	})
}

func TestMetaValue_JSON(t *testing.T) {
	t.Parallel()

	t.Run("single value marshals as string", func(t *testing.T) {
		t.Parallel()

		meta := cardscan.Metadata{"replay_count": cardscan.String("12")}
		data, err := json.Marshal(meta)
		require.NoError(t, err)

		assert.JSONEq(t, `{"replay_count":"12"}`, string(data))
	})

	t.Run("list value marshals as array", func(t *testing.T) {
		t.Parallel()

		meta := cardscan.Metadata{cardscan.MetaBadges: cardscan.Strings([]string{"New", "Hot"})}
		data, err := json.Marshal(meta)
		require.NoError(t, err)

		assert.JSONEq(t, `{"badges":["New","Hot"]}`, string(data))
	})

	t.Run("round trips both shapes", func(t *testing.T) {
		t.Parallel()

		var meta cardscan.Metadata
		err := json.Unmarshal([]byte(`{"author":"Jane","badges":["A","B"]}`), &meta)
		require.NoError(t, err)

		assert.Equal(t, "Jane", meta[cardscan.MetaAuthor].Value)
		assert.Equal(t, []string{"A", "B"}, meta[cardscan.MetaBadges].List)
	})
}

func TestTopicGroup_MarshalJSON(t *testing.T) {
	t.Parallel()

	group := &cardscan.TopicGroup{
		GroupType:  cardscan.GroupCompany,
		HeaderText: "By Company",
		Cards: []*cardscan.Card{
			{Label: "Google", MainLink: "https://example.com/google"},
			{Label: "Meta", MainLink: "https://example.com/meta"},
		},
	}

	data, err := json.Marshal(group)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Company", out["type"])
	assert.Equal(t, "By Company", out["header"])
	assert.Equal(t, float64(2), out["card_count"])
}

func TestCountKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "replay_count", cardscan.CountKey("replay"))
	assert.Equal(t, "question_count", cardscan.CountKey("question"))
}
