package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles the fake upstream servers and a mock clock for
// controller and web tests.
type TestController struct {
	Clock     *clock.Mock
	fakeESPN  *FakeESPNServer
	fakeBrevo *FakeBrevoServer
}

func NewTestController() *TestController {
	return &TestController{
		Clock:     clock.NewMock(),
		fakeESPN:  NewFakeESPNServer(),
		fakeBrevo: NewFakeBrevoServer(),
	}
}

func (c *TestController) Close() {
	c.fakeESPN.Close()
	c.fakeBrevo.Close()
}

func (c *TestController) ESPNURL() string {
	return c.fakeESPN.URL()
}

func (c *TestController) BrevoURL() string {
	return c.fakeBrevo.URL()
}

func (c *TestController) ESPN() *FakeESPNServer {
	return c.fakeESPN
}

func (c *TestController) Brevo() *FakeBrevoServer {
	return c.fakeBrevo
}
