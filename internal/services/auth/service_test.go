package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/cardtable/internal/dependencies/mocks"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New("test-secret", s.clock, DefaultConfig())
}

func (s *ServiceSuite) TestCreateGuestIssuesToken() {
	session, err := s.service.CreateGuest("Sam")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.Guest.ID)
	s.Equal("Sam", session.Guest.Nickname)
}

func (s *ServiceSuite) TestGuestIDsAreUnique() {
	first, err := s.service.CreateGuest("Sam")
	s.Require().NoError(err)
	second, err := s.service.CreateGuest("Sam")
	s.Require().NoError(err)

	s.NotEqual(first.Guest.ID, second.Guest.ID)
}

func (s *ServiceSuite) TestVerifyTokenRoundTrip() {
	session, err := s.service.CreateGuest("Sam")
	s.Require().NoError(err)

	guest, err := s.service.VerifyToken(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Guest.ID, guest.ID)
	s.Equal("Sam", guest.Nickname)
}

func (s *ServiceSuite) TestVerifyGarbageToken() {
	_, err := s.service.VerifyToken("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenSignedWithOtherSecret() {
	other := New("different-secret", s.clock, DefaultConfig())
	session, err := other.CreateGuest("Sam")
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestTokenExpires() {
	session, err := s.service.CreateGuest("Sam")
	s.Require().NoError(err)

	s.clock.Advance(23 * time.Hour)
	_, err = s.service.VerifyToken(session.Token)
	s.NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.service.VerifyToken(session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestCustomTokenDuration() {
	short := New("test-secret", s.clock, Config{TokenDuration: time.Minute})
	session, err := short.CreateGuest("Sam")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)
	_, err = short.VerifyToken(session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}
