package cardscan_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", cardscan.ErrorCode(nil))
	})

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := cardscan.Errorf(cardscan.ENOTFOUND, "run not found")
		assert.Equal(t, cardscan.ENOTFOUND, cardscan.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", cardscan.Errorf(cardscan.EINVALID, "bad input"))
		assert.Equal(t, cardscan.EINVALID, cardscan.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, cardscan.EINTERNAL, cardscan.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := cardscan.Errorf(cardscan.EINVALID, "card label required")
		assert.Equal(t, "card label required", cardscan.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error", cardscan.ErrorMessage(errors.New("boom")))
	})
}
