package provider

const googleText = `otpauth://totp/GitHub:octocat?secret=JBSWY3DPEHPK3PXP&issuer=GitHub
otpauth://totp/ACME%20Co:john@example.com?secret=GEZDGNBVGY3TQOJQ&issuer=ACME%20Co&algorithm=SHA256&digits=8&period=60

otpauth://hotp/Token?secret=JBSWY3DPEHPK3PXP&counter=7
`

const twoFASJSON = `{
  "services": [
    {
      "name": "GitHub",
      "secret": "JBSWY3DPEHPK3PXP",
      "otp": {"account": "octocat", "issuer": "GitHub", "digits": 6, "period": 30, "algorithm": "SHA1", "tokenType": "TOTP"},
      "order": {"position": 0}
    },
    {
      "name": "Bank",
      "secret": "GEZDGNBVGY3TQOJQ",
      "otp": {"tokenType": "HOTP", "counter": 5, "algorithm": "SHA256", "digits": 8},
      "order": {"position": 1}
    }
  ],
  "groups": [],
  "schemaVersion": 4,
  "appVersionCode": 5000017
}`

const lastPassJSON = `{
  "deviceId": "d1",
  "deviceSecret": "s1",
  "localDeviceId": "l1",
  "deviceName": "phone",
  "version": 3,
  "accounts": [
    {
      "accountID": "1",
      "issuerName": "GitHub",
      "originalIssuerName": "GitHub",
      "userName": "octocat",
      "originalUserName": "octocat",
      "pushNotification": false,
      "secret": "JBSWY3DPEHPK3PXP",
      "timeStep": 60,
      "digits": 6,
      "creationTimestamp": 1700000000000,
      "isFavorite": true,
      "algorithm": "SHA1",
      "folderData": {"folderId": 1, "position": 0}
    },
    {
      "accountID": "2",
      "issuerName": "",
      "userName": "solo",
      "secret": "gezd gnbv",
      "timeStep": 30,
      "digits": 8,
      "isFavorite": false,
      "algorithm": "sha512",
      "folderData": {"folderId": 9, "position": 1}
    }
  ],
  "folders": [
    {"id": 0, "name": "Favorites", "isOpened": true},
    {"id": 1, "name": "Work", "isOpened": true}
  ]
}`

const enteText = `otpauth://totp/GitHub:octocat?secret=JBSWY3DPEHPK3PXP&issuer=GitHub&algorithm=sha1&digits=6&period=30&codeDisplay=%7B%22trashed%22%3Atrue%7D
otpauth://totp/Bank:me?secret=GEZDGNBVGY3TQOJQ&issuer=Bank&codeDisplay=%7B%22trashed%22%3Afalse%2C%22tags%22%3A%5B%22work%22%2C%22finance%22%5D%7D
otpauth://totp/Plain?secret=GEZDGNBVGY3TQOJQ
`

const enteEncryptedJSON = `{
  "version": 1,
  "kdfParams": {"memLimit": 1073741824, "opsLimit": 4, "salt": "c2FsdA=="},
  "encryptedData": "ZW5jcnlwdGVk",
  "encryptionNonce": "bm9uY2U="
}`

const bitwardenJSON = `{
  "encrypted": false,
  "folders": [],
  "items": [
    {"type": 1, "name": "GitHub", "login": {"username": "octocat", "totp": "otpauth://totp/GitHub:octocat?secret=JBSWY3DPEHPK3PXP&issuer=GitHub"}},
    {"type": 1, "name": "Bank", "login": {"username": "me", "totp": "GEZD GNBV GY3T QOJQ"}},
    {"type": 1, "name": "Counter", "login": {"totp": "otpauth://hotp/x?secret=JBSWY3DPEHPK3PXP&counter=1"}},
    {"type": 1, "name": "No TOTP", "login": {"username": "a", "totp": null}},
    {"type": 3, "name": "Card"}
  ]
}`

const bitwardenCSV = `folder,favorite,type,name,notes,fields,reprompt,login_uri,login_username,login_password,login_totp
,,login,GitHub,,,0,https://github.com,octocat,pw,JBSWY3DPEHPK3PXP
Work,1,login,"Corp, Inc.",,,0,https://corp.example,me,pw,"otpauth://totp/Corp:me?secret=GEZDGNBVGY3TQOJQ&issuer=Corp&period=60"
,,login,No TOTP,,,0,https://x.example,me,pw,
,,note,Secure note,text,,0,,,,
`
