// internal/services/registry_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/models"
)

type RegistryServiceTestSuite struct {
	suite.Suite
	registry *RegistryService
}

func (suite *RegistryServiceTestSuite) SetupTest() {
	db := newTestDB(suite.T())
	suite.registry = NewRegistryService(db)
}

func (suite *RegistryServiceTestSuite) TestOwnerSeeded() {
	owner, err := suite.registry.Owner()
	suite.NoError(err)
	suite.Equal(testOwner, owner)
}

func (suite *RegistryServiceTestSuite) TestRegisterParticipant() {
	participant, err := suite.registry.RegisterParticipant(testOwner, &RegisterParticipantRequest{
		Address:  "0x1111111111111111111111111111111111111111",
		Name:     "Acme Raw Materials",
		Location: "Springfield",
		Role:     models.RoleSupplier,
	})
	suite.NoError(err)
	suite.Equal(models.RoleSupplier, participant.Role)

	got, found, err := suite.registry.GetParticipant(participant.Address)
	suite.NoError(err)
	suite.True(found)
	suite.Equal("Acme Raw Materials", got.Name)
}

func (suite *RegistryServiceTestSuite) TestRegisterNormalizesAddressCase() {
	_, err := suite.registry.RegisterParticipant(testOwner, &RegisterParticipantRequest{
		Address:  "0x1111111111111111111111111111111111111ABC",
		Name:     "Mixed Case",
		Location: "Springfield",
		Role:     models.RoleSupplier,
	})
	suite.NoError(err)

	// Lookup with a differently-cased address must hit the same record
	got, found, err := suite.registry.GetParticipant("0x1111111111111111111111111111111111111abc")
	suite.NoError(err)
	suite.True(found)
	suite.Equal("0x1111111111111111111111111111111111111abc", got.Address)
}

func (suite *RegistryServiceTestSuite) TestRegisterRejectsNonOwner() {
	_, err := suite.registry.RegisterParticipant(testOutsider, &RegisterParticipantRequest{
		Address:  testSupplier,
		Name:     "Acme Raw Materials",
		Location: "Springfield",
		Role:     models.RoleSupplier,
	})
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindAuthorization))
}

func (suite *RegistryServiceTestSuite) TestRegisterRejectsDuplicate() {
	req := &RegisterParticipantRequest{
		Address:  testSupplier,
		Name:     "Acme Raw Materials",
		Location: "Springfield",
		Role:     models.RoleSupplier,
	}

	_, err := suite.registry.RegisterParticipant(testOwner, req)
	suite.NoError(err)

	_, err = suite.registry.RegisterParticipant(testOwner, req)
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *RegistryServiceTestSuite) TestRegisterRejectsZeroAddress() {
	_, err := suite.registry.RegisterParticipant(testOwner, &RegisterParticipantRequest{
		Address:  "0x0000000000000000000000000000000000000000",
		Name:     "Nobody",
		Location: "Nowhere",
		Role:     models.RoleSupplier,
	})
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *RegistryServiceTestSuite) TestRegisterRejectsUnknownRole() {
	_, err := suite.registry.RegisterParticipant(testOwner, &RegisterParticipantRequest{
		Address:  testSupplier,
		Name:     "Acme Raw Materials",
		Location: "Springfield",
		Role:     models.Role("auditor"),
	})
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *RegistryServiceTestSuite) TestGetParticipantMissIsNotAnError() {
	_, found, err := suite.registry.GetParticipant(testOutsider)
	suite.NoError(err)
	suite.False(found)
}

func (suite *RegistryServiceTestSuite) TestTransferOwnership() {
	newOwner := "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	suite.NoError(suite.registry.TransferOwnership(testOwner, newOwner))

	owner, err := suite.registry.Owner()
	suite.NoError(err)
	suite.Equal(newOwner, owner)

	// The old owner keeps no rights after the transfer
	err = suite.registry.TransferOwnership(testOwner, testOutsider)
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindAuthorization))

	// The new owner can register participants
	_, err = suite.registry.RegisterParticipant(newOwner, &RegisterParticipantRequest{
		Address:  testSupplier,
		Name:     "Acme Raw Materials",
		Location: "Springfield",
		Role:     models.RoleSupplier,
	})
	suite.NoError(err)
}

func (suite *RegistryServiceTestSuite) TestTransferOwnershipRejectsNonOwner() {
	err := suite.registry.TransferOwnership(testOutsider, testSupplier)
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindAuthorization))
}

func (suite *RegistryServiceTestSuite) TestTransferOwnershipRejectsZeroAddress() {
	err := suite.registry.TransferOwnership(testOwner, "0x0000000000000000000000000000000000000000")
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *RegistryServiceTestSuite) TestListParticipants() {
	seedParticipants(suite.T(), suite.registry)

	participants, total, err := suite.registry.ListParticipants(paginationDefaults())
	suite.NoError(err)
	suite.EqualValues(5, total)
	suite.Len(participants, 5)
}

func (suite *RegistryServiceTestSuite) TestListParticipantAddresses() {
	seedParticipants(suite.T(), suite.registry)

	addresses, err := suite.registry.ListParticipantAddresses()
	suite.NoError(err)
	suite.Len(addresses, 5)
	suite.Contains(addresses, testSupplier)
	suite.Contains(addresses, testConsumer)
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}
