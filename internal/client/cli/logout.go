package cli

import "context"

// runLogout выполняет выход на этом устройстве.
// Недоступный сервер не мешает выходу: локальная сессия чистится всегда.
func (c *Cli) runLogout(ctx context.Context) error {
	c.session.Logout(ctx)
	c.io.Println("✓ Signed out")
	return nil
}

// runLogoutAll инвалидирует все сессии аккаунта и выходит локально
func (c *Cli) runLogoutAll(ctx context.Context) error {
	c.session.LogoutAll(ctx)
	c.io.Println("✓ Signed out everywhere")
	return nil
}
