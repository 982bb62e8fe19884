package mockapi

import (
	"bufio"
	"strings"
)

const defaultProperties = `#Minecraft server properties
motd=A Minecraft Server
max-players=20
online-mode=true
difficulty=easy
server-port=25565
`

// property returns the value of key in a server.properties document.
func property(content, key string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == key {
			return strings.TrimSpace(parts[1]), true
		}
	}
	return "", false
}

// setProperty rewrites key in place, or appends it. Every other line,
// comments included, is kept as it was.
func setProperty(content, key, value string) string {
	var b strings.Builder
	found := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, "=", 2)
		if !found && !strings.HasPrefix(line, "#") && len(parts) == 2 && strings.TrimSpace(parts[0]) == key {
			line = key + "=" + value
			found = true
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if !found {
		b.WriteString(key + "=" + value + "\n")
	}
	return b.String()
}
