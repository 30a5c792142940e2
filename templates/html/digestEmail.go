package templates

import "fmt"

// RenderUnreadDigestEmail generates the HTML body for the daily unread
// notification reminder email
func RenderUnreadDigestEmail(name string, unread int) string {
	plural := "notifications"
	if unread == 1 {
		plural = "notification"
	}
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>You have unread updates - StudyHall</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f4f7; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: #4f46e5; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #374151; }
    .content h2 { color: #111827; margin-top: 0; }
    .count-box { background: #eef2ff; border-radius: 12px; padding: 20px; margin: 20px 0; text-align: center; }
    .count-box span { color: #4f46e5; font-size: 28px; font-weight: 700; }
    .footer { padding: 20px 30px; color: #9ca3af; font-size: 12px; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>StudyHall</h1></div>
    <div class="content">
      <h2>Hi %s,</h2>
      <p>Your classrooms have been busy while you were away.</p>
      <div class="count-box"><span>%d</span> unread %s</div>
      <p>Sign in to catch up on announcements, assignments and reference notes.</p>
    </div>
    <div class="footer">You are receiving this because you have unread classroom updates.</div>
  </div>
</body>
</html>`, name, unread, plural)
}
