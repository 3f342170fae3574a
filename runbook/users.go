package runbook

import (
	"context"

	"github.com/fwojciec/yoga/markdown"
)

// checklist is what an operator does after reviewing pending users.
const checklist = "## What you need to do\n" + `
1. Open the attendance database console.
2. Run this SQL to see all users:

   ` + "```sql" + `
   SELECT username, email, role, email_verified, approved FROM user;
   ` + "```" + `

3. Run this SQL to fix users:

   ` + "```sql" + `
   -- Make admin an ADMIN
   UPDATE user SET role='ADMIN', email_verified=1, approved=1 WHERE username='admin';

   -- Make all others USER
   UPDATE user SET role='USER', email_verified=1, approved=1 WHERE username!='admin';
   ` + "```" + `

4. Verify:

   ` + "```sql" + `
   SELECT username, role FROM user ORDER BY role;
   ` + "```" + `
`

// CheckUsers lists the accounts awaiting approval, then prints the SQL
// checklist for fixing roles by hand.
func (r *Runner) CheckUsers(ctx context.Context) error {
	r.println("Checking pending users...")
	r.println()

	users, err := r.service.PendingUsers(ctx)
	if err != nil {
		return r.fail("check users", "Error", err)
	}

	r.println("=== PENDING USERS (approved=false) ===")
	if len(users) == 0 {
		r.println("No pending users found.")
	}
	for _, u := range users {
		r.printf("- %s (%s)\n", u.Username, u.Email)
	}
	r.println()
	r.println(markdown.Render(checklist, r.width, r.palette))
	return nil
}

// Approve approves a pending account.
func (r *Runner) Approve(ctx context.Context, username string) error {
	r.printf("Approving %s...\n", username)
	resp, err := r.service.ApproveUser(ctx, username)
	if err != nil {
		return r.fail("approve", "Failed", err)
	}
	r.printf("Response: %s\n", compact(resp.Body))
	return nil
}

// Reject rejects a pending account. The backend deletes rejected accounts.
func (r *Runner) Reject(ctx context.Context, username, reason string) error {
	r.printf("Rejecting %s...\n", username)
	resp, err := r.service.RejectUser(ctx, username, reason)
	if err != nil {
		return r.fail("reject", "Failed", err)
	}
	r.printf("Response: %s\n", compact(resp.Body))
	return nil
}

// Delete deletes an account.
func (r *Runner) Delete(ctx context.Context, username string) error {
	r.printf("Deleting %s...\n", username)
	resp, err := r.service.DeleteUser(ctx, username)
	if err != nil {
		return r.fail("delete", "Failed", err)
	}
	r.printf("Response: %s\n", compact(resp.Body))
	return nil
}
