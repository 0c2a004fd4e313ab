package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	testCases := []struct {
		name      string
		parseErr  error
		dialErr   error
		expectErr bool
	}{
		{name: "success"},
		{name: "template error", parseErr: errors.New("bad template"), expectErr: true},
		{name: "dial error", dialErr: errors.New("connection refused"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := Mail{
				dialer: mockDialer,
				parser: mockParser,
				sender: "sender@example.com",
			}

			if tc.parseErr != nil {
				mockParser.On("ParseTemplate", commentTemplate, mock.Anything).Return(nil, nil, nil, tc.parseErr)
			} else {
				mockParser.On("ParseTemplate", commentTemplate, mock.Anything).Return(
					bytes.NewBufferString("Test Subject"),
					bytes.NewBufferString("Test Plain Body"),
					bytes.NewBufferString("Test HTML Body"),
					nil,
				)
				mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Return(tc.dialErr)
			}

			err := mailer.send("test@example.com", commentNotification{PostTitle: "Hello"}, commentTemplate)
			assert.Equal(t, tc.expectErr, err != nil)

			mockParser.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}
