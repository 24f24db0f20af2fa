package helpspot

import (
	"encoding/json"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// decode turns a raw response body into a generic map, honoring the output
// format the client asked the server for.
func (c *Client) decode(data []byte) (map[string]any, error) {
	if c.output == OutputXML {
		mv, err := mxj.NewMapXml(data)
		if err != nil {
			return nil, fmt.Errorf("parsing XML response: %w", err)
		}
		m := map[string]any(mv)
		// XML replies are wrapped in a single <results> element that the
		// JSON output does not carry.
		if inner, ok := m["results"].(map[string]any); ok && len(m) == 1 {
			return inner, nil
		}
		return m, nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing JSON response: %w", err)
	}
	return m, nil
}
