package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Login signs into the portal with the configured credentials. The login
// form is a plain text/password pair with a submit button; Enter on the
// password field is the fallback when no button is found.
func (b *Browser) Login(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	loginURL := strings.TrimRight(b.cfg.Portal.BaseURL, "/") + b.cfg.Portal.LoginPath
	if err := b.Navigate(loginURL); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	// Client-side framework boot.
	b.settle()

	user, err := b.page.Timeout(b.cfg.Portal.NavTimeout).Element(`input[type="text"]`)
	if err != nil {
		b.Screenshot("login_no_username")
		return fmt.Errorf("%w: username field: %v", ErrLoginFailed, err)
	}
	if err := b.TypeInto(user, b.cfg.Portal.Username); err != nil {
		return fmt.Errorf("%w: type username: %v", ErrLoginFailed, err)
	}
	time.Sleep(200 * time.Millisecond)

	pass, err := b.page.Timeout(b.cfg.Portal.NavTimeout).Element(`input[type="password"]`)
	if err != nil {
		b.Screenshot("login_no_password")
		return fmt.Errorf("%w: password field: %v", ErrLoginFailed, err)
	}
	if err := b.TypeInto(pass, b.cfg.Portal.Password); err != nil {
		return fmt.Errorf("%w: type password: %v", ErrLoginFailed, err)
	}
	time.Sleep(200 * time.Millisecond)

	submit, err := b.page.Timeout(b.cfg.Portal.NavTimeout).Element(`button[type="submit"]`)
	if err == nil {
		if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("%w: submit: %v", ErrLoginFailed, err)
		}
	} else {
		_ = pass.Focus()
		if err := b.page.Keyboard.Press(input.Enter); err != nil {
			return fmt.Errorf("%w: submit via Enter: %v", ErrLoginFailed, err)
		}
	}

	b.logger.Info("login submitted", "url", loginURL)
	b.settle()
	return nil
}
