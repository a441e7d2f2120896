package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-project-api/internal/models"
)

func TestToUserDTO_NeverExposesPasswordHash(t *testing.T) {
	user := models.User{ID: 3, Username: "carol", PasswordHash: "$2a$10$secret", Role: models.RoleAdmin}

	out := ToUserDTO(user)
	assert.Equal(t, uint64(3), out.ID)
	assert.Equal(t, []string{"USER", "ADMIN"}, out.Authorities)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "email")
}

func TestToUserSummary(t *testing.T) {
	email := "carol@example.com"
	summary := ToUserSummary(models.User{ID: 3, Username: "carol", Email: &email})
	assert.Equal(t, UserSummaryDTO{ID: 3, Username: "carol"}, summary)
}
