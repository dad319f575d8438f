package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/core/services"
)

// clientWorkbook builds an in-memory .xlsx with a header row followed by the
// given (name, phone) rows.
func clientWorkbook(t *testing.T, rows [][2]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Name"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Phone"))
	for i, row := range rows {
		cellA, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		cellB, err := excelize.CoordinatesToCellName(2, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cellA, row[0]))
		if row[1] != "" {
			require.NoError(t, f.SetCellValue(sheet, cellB, row[1]))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportClientsFromExcel(t *testing.T) {
	ctx := context.Background()
	mockClientRepo := new(MockClientRepository)
	service := services.NewClientService(mockClientRepo)
	userID := uuid.NewString()

	workbook := clientWorkbook(t, [][2]string{
		{"Kovacs Trade Kft", "+36 30 111 2222"},
		{"Adler GmbH", ""},
	})

	mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.Name == "Kovacs Trade Kft" && client.Phone == "+36 30 111 2222" &&
			client.ClientID != "" && client.CreatedBy == userID
	})).Return(nil).Once()
	mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.Name == "Adler GmbH" && client.Phone == ""
	})).Return(nil).Once()

	imported, err := service.ImportClientsFromExcel(ctx, workbook, userID)

	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	mockClientRepo.AssertExpectations(t)
}

func TestImportClientsSkipsBlankRows(t *testing.T) {
	ctx := context.Background()
	mockClientRepo := new(MockClientRepository)
	service := services.NewClientService(mockClientRepo)

	workbook := clientWorkbook(t, [][2]string{
		{"", "+36 30 111 2222"}, // no name, skipped
		{"  Valid Client  ", ""},
	})

	mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.Name == "Valid Client"
	})).Return(nil).Once()

	imported, err := service.ImportClientsFromExcel(ctx, workbook, uuid.NewString())

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	mockClientRepo.AssertExpectations(t)
}

func TestImportClientsRejectsNonWorkbook(t *testing.T) {
	ctx := context.Background()
	mockClientRepo := new(MockClientRepository)
	service := services.NewClientService(mockClientRepo)

	_, err := service.ImportClientsFromExcel(ctx, strings.NewReader("not an xlsx"), uuid.NewString())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockClientRepo.AssertNotCalled(t, "SaveClient", mock.Anything, mock.Anything)
}

func TestImportClientsStopsOnRepositoryError(t *testing.T) {
	ctx := context.Background()
	mockClientRepo := new(MockClientRepository)
	service := services.NewClientService(mockClientRepo)

	workbook := clientWorkbook(t, [][2]string{
		{"First Client", ""},
		{"Second Client", ""},
	})

	mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.Name == "First Client"
	})).Return(nil).Once()
	mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.Name == "Second Client"
	})).Return(apperrors.ErrDuplicate).Once()

	imported, err := service.ImportClientsFromExcel(ctx, workbook, uuid.NewString())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, 1, imported)
}
