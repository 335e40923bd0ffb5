package mailer

// Email templates rendered by plain placeholder substitution. Placeholders use
// the {{name}} form and are replaced verbatim; no template engine is involved
// so output stays byte-for-byte predictable.

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background-color:#0f1117;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="max-width:600px;margin:0 auto;background-color:#141824;">
    <tr><td style="padding:32px 40px 16px;">
      <h1 style="color:#fdd458;font-size:24px;margin:0;">Signalist</h1>
    </td></tr>
    <tr><td style="padding:8px 40px;">
      <h2 style="color:#ffffff;font-size:20px;margin:0 0 16px;">Welcome aboard, {{name}}!</h2>
      <p style="color:#9ca3af;font-size:15px;line-height:1.6;margin:0 0 24px;">{{intro}}</p>
      <ul style="color:#9ca3af;font-size:15px;line-height:1.8;padding-left:20px;margin:0 0 24px;">
        <li>Build your watchlist and follow the symbols you care about</li>
        <li>Set price alerts and get notified the moment a threshold is crossed</li>
        <li>Receive a daily market news digest tailored to your watchlist</li>
      </ul>
    </td></tr>
    <tr><td style="padding:16px 40px 32px;">
      <p style="color:#6b7280;font-size:12px;margin:0;">You are receiving this email because you signed up for Signalist.</p>
    </td></tr>
  </table>
</body>
</html>`

const newsSummaryEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background-color:#0f1117;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="max-width:600px;margin:0 auto;background-color:#141824;">
    <tr><td style="padding:32px 40px 16px;">
      <h1 style="color:#fdd458;font-size:24px;margin:0;">Signalist</h1>
      <p style="color:#6b7280;font-size:13px;margin:4px 0 0;">Market News Summary — {{date}}</p>
    </td></tr>
    <tr><td style="padding:8px 40px 24px;color:#d1d5db;font-size:15px;line-height:1.6;">
      {{newsContent}}
    </td></tr>
    <tr><td style="padding:16px 40px 32px;">
      <p style="color:#6b7280;font-size:12px;margin:0;">You are receiving this digest because news delivery is enabled for your account.</p>
    </td></tr>
  </table>
</body>
</html>`

const priceAlertEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background-color:#0f1117;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="max-width:600px;margin:0 auto;background-color:#141824;">
    <tr><td style="padding:32px 40px 16px;">
      <h1 style="color:#fdd458;font-size:24px;margin:0;">Signalist</h1>
      <p style="color:#6b7280;font-size:13px;margin:4px 0 0;">Price Alert — {{alertName}}</p>
    </td></tr>
    <tr><td style="padding:8px 40px;">
      <h2 style="color:#ffffff;font-size:20px;margin:0 0 8px;">{{company}} ({{symbol}})</h2>
      <p style="color:{{priceColor}};font-size:32px;font-weight:bold;margin:0 0 8px;">{{currentPrice}}</p>
      <p style="color:#9ca3af;font-size:14px;margin:0 0 16px;">Threshold: {{thresholdPrice}}</p>
      <p style="color:#d1d5db;font-size:15px;line-height:1.6;margin:0 0 24px;">{{alertMessage}}</p>
      <p style="color:#6b7280;font-size:13px;margin:0;">Triggered at {{timestamp}}</p>
    </td></tr>
    <tr><td style="padding:16px 40px 32px;">
      <p style="color:#6b7280;font-size:12px;margin:0;">You are receiving this alert because you configured it on your Signalist watchlist.</p>
    </td></tr>
  </table>
</body>
</html>`
