package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactUseCase_Submit(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	uc := NewContactUC(dispatcher, NewValidator(), logger.Nop{})

	msg, err := uc.Submit(context.Background(), &ContactReq{
		Name:    " Іван ",
		Email:   "ivan@example.com",
		Subject: "warranty",
		Message: "Не гріє",
	})
	require.NoError(t, err)
	assert.Equal(t, "Іван", msg.Name)
	assert.Equal(t, "Гарантія", msg.SubjectLabel())
	assert.False(t, msg.ReceivedAt.IsZero())
	require.Len(t, dispatcher.contacts, 1)

	_, err = uc.Submit(context.Background(), &ContactReq{Name: "Іван", Subject: "other", Message: "?"})
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "email", e.FieldOf(err))
	assert.Len(t, dispatcher.contacts, 1)
}

func TestImageUseCase_Disabled(t *testing.T) {
	uc := NewImageUC(nil, logger.Nop{})

	_, err := uc.Upload(context.Background(), &UploadImageReq{})
	require.ErrorIs(t, err, e.ErrStorageDisabled)
	require.ErrorIs(t, uc.Delete(context.Background(), "https://cdn/x.jpg"), e.ErrStorageDisabled)
}

func TestImageUseCase_Upload(t *testing.T) {
	images := &fakeImages{uploadFn: func(req *UploadImageReq) (*UploadImageRes, error) {
		return NewUploadImageRes("https://cdn/products/1.png", "products/1.png"), nil
	}}
	uc := NewImageUC(images, logger.Nop{})

	res, err := uc.Upload(context.Background(), NewUploadImageReq([]byte{1}, "image/png", 1, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/products/1.png", res.URL)

	require.ErrorIs(t, uc.Delete(context.Background(), ""), e.ErrValidation)
	require.NoError(t, uc.Delete(context.Background(), res.URL))
	assert.Equal(t, []string{res.URL}, images.deleted)
}
