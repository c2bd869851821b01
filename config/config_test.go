package config

import "testing"

func TestDefaultThenUpdate(t *testing.T) {
	Set(Default())
	if Get().DefaultPacketWords != 16 {
		t.Fatalf("default DefaultPacketWords = %d, want 16", Get().DefaultPacketWords)
	}
	Update(func(c *Config) { c.PreferIPv6 = true })
	if !Get().PreferIPv6 {
		t.Fatal("Update() did not persist PreferIPv6 = true")
	}
	Set(Default())
}
