//Allowed ICU case elements and attributes, and attribute value sanitizers

package i18n

import (
	"regexp"
	"strings"
)

var (
	safeURLRegex  = regexp.MustCompile(`(?i)^(?:(?:https?|mailto|ftp|tel|file):|[^&:/?#]*(?:[/?#]|$))`)
	dataURLRegex  = regexp.MustCompile(`(?i)^data:(?:image/(?:bmp|gif|jpeg|jpg|png|tiff|webp)|video/(?:mpeg|mp4|ogg|webm)|audio/(?:mp3|oga|ogg|opus));base64,[a-z0-9+/]+=*$`)
	validElements = tagSet(
		//Void
		"area,br,col,hr,img,wbr",
		//Optional end tag
		"colgroup,dd,dt,li,p,tbody,td,tfoot,th,thead,tr,rp,rt",
		//Block
		"address,article,aside,blockquote,caption,center,del,details,dialog,dir,div,dl,figure,figcaption,footer,h1,h2,h3,h4,h5,h6,header,hgroup,ins,main,map,menu,nav,ol,pre,section,summary,table,ul",
		//Inline
		"a,abbr,acronym,audio,b,bdi,bdo,big,cite,code,dfn,em,font,i,kbd,label,mark,picture,q,ruby,s,samp,small,source,span,strike,strong,sub,sup,time,track,tt,u,var,video",
	)
	uriAttrs    = tagSet("background,cite,href,itemtype,longdesc,poster,src,xlink:href")
	srcsetAttrs = tagSet("srcset")
	validAttrs  = tagSet(
		"background,cite,href,itemtype,longdesc,poster,src,xlink:href,srcset",
		"abbr,accesskey,align,alt,autoplay,axis,bgcolor,border,cellpadding,cellspacing,class,clear,color,cols,colspan,compact,controls,coords,datetime,default,dir,download,face,headers,height,hidden,hreflang,hspace,ismap,itemscope,itemprop,kind,label,lang,language,loop,media,muted,nohref,nowrap,open,preload,rel,rev,role,rows,rowspan,rules,scope,scrolling,shape,size,sizes,span,srclang,start,summary,tabindex,target,title,translate,type,usemap,valign,value,vspace,width",
		"aria-activedescendant,aria-atomic,aria-autocomplete,aria-busy,aria-checked,aria-colcount,aria-colindex,aria-colspan,aria-controls,aria-current,aria-describedby,aria-details,aria-disabled,aria-dropeffect,aria-errormessage,aria-expanded,aria-flowto,aria-grabbed,aria-haspopup,aria-hidden,aria-invalid,aria-keyshortcuts,aria-label,aria-labelledby,aria-level,aria-live,aria-modal,aria-multiline,aria-multiselectable,aria-orientation,aria-owns,aria-placeholder,aria-posinset,aria-pressed,aria-readonly,aria-relevant,aria-required,aria-roledescription,aria-rowcount,aria-rowindex,aria-rowspan,aria-selected,aria-setsize,aria-sort,aria-valuemax,aria-valuemin,aria-valuenow,aria-valuetext",
	)
)

func tagSet(lists ...string) map[string]bool {
	ret := make(map[string]bool)
	for _, l := range lists {
		for _, t := range strings.Split(l, ",") {
			ret[t] = true
		}
	}
	return ret
}

// Returns the sanitizer for a lower case attribute name
func attrSanitizer(lowerName string) SanitizerKind {
	switch {
	case uriAttrs[lowerName]:
		return SK_URL
	case srcsetAttrs[lowerName]:
		return SK_Srcset
	default:
		return SK_None
	}
}

// SanitizeURL returns the url if it uses a safe scheme (or a safe data: media type), and otherwise prefixes it with “unsafe:”
func SanitizeURL(url string) string {
	if safeURLRegex.MatchString(url) || dataURLRegex.MatchString(url) {
		return url
	}
	return "unsafe:" + url
}

// SanitizeSrcset runs SanitizeURL over each comma separated entry of a srcset
func SanitizeSrcset(srcset string) string {
	parts := strings.Split(srcset, ",")
	for i, p := range parts {
		parts[i] = SanitizeURL(strings.TrimSpace(p))
	}
	return strings.Join(parts, ", ")
}

func (s SanitizerKind) apply(value string) string {
	switch s {
	case SK_URL:
		return SanitizeURL(value)
	case SK_Srcset:
		return SanitizeSrcset(value)
	default:
		return value
	}
}
