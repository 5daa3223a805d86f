package registry

// builtinTLDs is the shipped endpoint table. An empty rdap means the
// registry has no native RDAP and only the aggregator plus WHOIS apply.
var builtinTLDs = []struct {
	tld   string
	rdap  string
	whois string
}{
	// Generic TLDs.
	{"com", "https://rdap.verisign.com/com/v1/domain/", "whois.verisign-grs.com"},
	{"net", "https://rdap.verisign.com/net/v1/domain/", "whois.verisign-grs.com"},
	{"org", "https://rdap.publicinterestregistry.org/rdap/domain/", "whois.pir.org"},
	{"info", "https://rdap.afilias.net/rdap/info/domain/", "whois.afilias.net"},
	{"biz", "https://rdap.nic.biz/domain/", "whois.nic.biz"},
	{"name", "https://rdap.verisign.com/name/v1/domain/", "whois.nic.name"},
	{"mobi", "https://rdap.afilias.net/rdap/mobi/domain/", "whois.afilias.net"},
	{"pro", "https://rdap.afilias.net/rdap/pro/domain/", "whois.afilias.net"},

	// Tech and startup TLDs.
	{"io", "https://rdap.nic.io/domain/", "whois.nic.io"},
	{"co", "https://rdap.nic.co/domain/", "whois.nic.co"},
	{"app", "https://rdap.nic.google/domain/", "whois.nic.google"},
	{"dev", "https://rdap.nic.google/domain/", "whois.nic.google"},
	{"ai", "", "whois.nic.ai"},
	{"tech", "https://rdap.centralnic.com/tech/domain/", "whois.centralnic.com"},
	{"cloud", "https://rdap.nic.cloud/domain/", "whois.nic.cloud"},
	{"digital", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"software", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"systems", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"network", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"solutions", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"agency", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"studio", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"design", "https://rdap.centralnic.com/design/domain/", "whois.centralnic.com"},
	{"media", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},

	// Popular new gTLDs.
	{"xyz", "https://rdap.nic.xyz/domain/", "whois.nic.xyz"},
	{"online", "https://rdap.centralnic.com/online/domain/", "whois.centralnic.com"},
	{"site", "https://rdap.centralnic.com/site/domain/", "whois.centralnic.com"},
	{"store", "https://rdap.centralnic.com/store/domain/", "whois.centralnic.com"},
	{"shop", "https://rdap.nic.shop/domain/", "whois.nic.shop"},
	{"club", "https://rdap.nic.club/domain/", "whois.nic.club"},
	{"live", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"life", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"world", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"today", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"space", "https://rdap.centralnic.com/space/domain/", "whois.centralnic.com"},
	{"top", "https://rdap.nic.top/domain/", "whois.nic.top"},
	{"one", "https://rdap.nic.one/domain/", "whois.nic.one"},
	{"blog", "https://rdap.nic.blog/domain/", "whois.nic.blog"},
	{"news", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},
	{"email", "https://rdap.donuts.co/rdap/domain/", "whois.donuts.co"},

	// European ccTLDs.
	{"de", "https://rdap.denic.de/domain/", "whois.denic.de"},
	{"eu", "", "whois.eu"},
	{"at", "", "whois.nic.at"},
	{"ch", "https://rdap.nic.ch/domain/", "whois.nic.ch"},
	{"li", "https://rdap.nic.ch/domain/", "whois.nic.li"},
	{"nl", "https://rdap.sidn.nl/domain/", "whois.sidn.nl"},
	{"be", "", "whois.dns.be"},
	{"fr", "https://rdap.nic.fr/domain/", "whois.nic.fr"},
	{"it", "", "whois.nic.it"},
	{"es", "", "whois.nic.es"},
	{"pl", "https://rdap.dns.pl/domain/", "whois.dns.pl"},
	{"cz", "https://rdap.nic.cz/domain/", "whois.nic.cz"},

	// Nordic ccTLDs.
	{"se", "https://rdap.iis.se/domain/", "whois.iis.se"},
	{"dk", "", "whois.dk-hostmaster.dk"},
	{"no", "https://rdap.norid.no/domain/", "whois.norid.no"},
	{"fi", "", "whois.fi"},
	{"is", "https://rdap.isnic.is/domain/", "whois.isnic.is"},

	// UK and Ireland.
	{"uk", "https://rdap.nominet.uk/uk/domain/", "whois.nic.uk"},
	{"co.uk", "https://rdap.nominet.uk/uk/domain/", "whois.nic.uk"},
	{"org.uk", "https://rdap.nominet.uk/uk/domain/", "whois.nic.uk"},
	{"ie", "https://rdap.weare.ie/domain/", "whois.iedr.ie"},

	// Americas.
	{"us", "https://rdap.nic.us/domain/", "whois.nic.us"},
	{"ca", "https://rdap.ca.fury.ca/rdap/domain/", "whois.cira.ca"},
	{"br", "https://rdap.registro.br/domain/", "whois.registro.br"},
	{"me", "https://rdap.nic.me/domain/", "whois.nic.me"},
	{"tv", "https://rdap.nic.tv/domain/", "whois.nic.tv"},
}
