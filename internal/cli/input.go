package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/mbelyaev/ferry/internal/models"
)

// askValue marks a profile option whose value must be prompted for at
// startup instead of being stored in the config file.
const askValue = "ask"

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// promptSecrets fills in profile options configured as "ask" by reading them
// from the terminal without echo. This keeps credentials out of the config
// file while the engine still sees complete options.
func (a *App) promptSecrets(profiles []models.Profile) error {
	for _, p := range profiles {
		for key, value := range p.Options {
			if value != askValue {
				continue
			}
			secret, err := a.getSecret(fmt.Sprintf("Enter %s for profile %q: ", key, p.ID))
			if err != nil {
				return fmt.Errorf("read %s for profile %q: %w", key, p.ID, err)
			}
			p.Options[key] = secret
		}
	}
	return nil
}

// getSecret prints a prompt and reads one value from the terminal without
// echo. A newline is printed after the read to keep the output tidy.
func (a *App) getSecret(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt); err != nil {
		return "", err
	}
	value, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(value), nil
}
