package runner

import (
	"os"
	"strconv"
	"testing"
	"time"
)

// fakeAgentEnv turns the test binary into a stand-in for agent_s: when set,
// the process exits with the given code, sleeps when the value is "sleep",
// or kills itself when the value is "kill".
const fakeAgentEnv = "AGENT_S_WRAPPER_FAKE_AGENT"

func TestMain(m *testing.M) {
	switch mode := os.Getenv(fakeAgentEnv); mode {
	case "":
		os.Exit(m.Run())
	case "sleep":
		time.Sleep(time.Minute)
		os.Exit(0)
	case "kill":
		if self, err := os.FindProcess(os.Getpid()); err == nil {
			_ = self.Signal(os.Kill)
		}
		time.Sleep(time.Minute)
		os.Exit(98)
	default:
		code, err := strconv.Atoi(mode)
		if err != nil {
			os.Exit(99)
		}
		os.Exit(code)
	}
}
