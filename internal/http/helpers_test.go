package http

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satriadi/perpustakaan/internal/catalog"
)

func itoa(id int) string {
	return strconv.Itoa(id)
}

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind   catalog.Kind
		status int
		known  bool
	}{
		{catalog.KindInvalidInput, http.StatusBadRequest, true},
		{catalog.KindInvalidID, http.StatusBadRequest, true},
		{catalog.KindInvalidSortKey, http.StatusBadRequest, true},
		{catalog.KindDuplicateUser, http.StatusConflict, true},
		{catalog.KindUserNotFound, http.StatusUnauthorized, true},
		{catalog.KindWrongPassword, http.StatusUnauthorized, true},
		{catalog.KindNoSession, http.StatusUnauthorized, true},
		{catalog.KindStoreUnavailable, http.StatusServiceUnavailable, true},
		{catalog.KindUnknown, 0, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			status, known := statusForKind(tc.kind)
			assert.Equal(t, tc.known, known)
			assert.Equal(t, tc.status, status)
		})
	}
}
